package catalog

// Names used in QueryError.
const (
	QueryTables      = "tables"
	QueryColumns     = "columns"
	QueryKeys        = "keys"
	QueryForeignKeys = "foreign_keys"
	QueryChecks      = "checks"
	QueryInherits    = "inherits"
)

const tablesQuery = `
	SELECT
		pg_class.oid,
		nspname::text AS schema,
		relname::text AS tablename,
		pg_catalog.obj_description(pg_class.oid, 'pg_class') AS table_description,
		CASE
			WHEN relkind IN ('r', 'p') THEN 'table'
			WHEN relkind = 'v' THEN 'view'
			WHEN relkind = 'm' THEN 'materialized view'
			ELSE 'foreign table'
		END AS reltype
	FROM pg_catalog.pg_class
	JOIN pg_catalog.pg_namespace ON (relnamespace = pg_namespace.oid)
	WHERE relkind IN ('r', 'p', 'v', 'm', 'f')
		AND nspname !~ 'pg_catalog|pg_toast|pg_temp_[0-9]+|information_schema'
	ORDER BY nspname, relname;
`

const columnsQuery = `
	SELECT
		a.oid,
		b.table_schema::text AS schema,
		b.table_name::text,
		b.column_name::text,
		col_description(a.oid, b.ordinal_position::int) AS description,
		b.udt_name::text || coalesce('(' || b.character_maximum_length || ')', '') AS column_type,
		CASE b.is_nullable WHEN 'YES' THEN true ELSE false END AS is_nullable,
		b.column_default::text
	FROM pg_catalog.pg_class a
	JOIN information_schema.columns b
		ON a.relname = b.table_name
		AND b.table_schema NOT IN ('pg_catalog', 'information_schema')
	JOIN pg_catalog.pg_namespace c
		ON a.relnamespace = c.oid AND b.table_schema = c.nspname
	ORDER BY b.table_schema, b.table_name, b.ordinal_position;
`

const keysQuery = `
	SELECT
		c.conrelid AS oid,
		c.conname::text AS constraint_name,
		pg_catalog.pg_get_indexdef(d.objid) AS constraint_definition,
		c.contype::text AS constraint_type
	FROM pg_catalog.pg_constraint AS c
	JOIN pg_catalog.pg_depend AS d
		ON d.refobjid = c.oid
		AND d.classid = 'pg_catalog.pg_class'::regclass
	WHERE c.contype IN ('p', 'u')
	ORDER BY c.conrelid, c.conname;
`

// Only the first key pair of a composite foreign key is joined.
const foreignKeysQuery = `
	SELECT
		pct.conrelid AS oid,
		CASE WHEN substring(pct.conname FROM 1 FOR 1) = '$' THEN ''
			ELSE pct.conname::text
		END AS constraint_name,
		pa.attname::text AS constraint_key,
		paf.attname::text AS constraint_fkey,
		pct.confrelid AS ref_oid
	FROM pg_catalog.pg_constraint pct
	JOIN pg_catalog.pg_class ON (pg_class.oid = pct.conrelid)
	JOIN pg_catalog.pg_class AS pc ON (pc.oid = pct.confrelid)
	JOIN pg_catalog.pg_attribute AS pa ON (pa.attnum = pct.conkey[1] AND pa.attrelid = pct.conrelid)
	JOIN pg_catalog.pg_attribute AS paf ON (paf.attnum = pct.confkey[1] AND paf.attrelid = pct.confrelid)
	WHERE pct.contype = 'f'
	ORDER BY pct.conrelid, pct.conname;
`

// pg_constraint.consrc was removed in PostgreSQL 12. pg_get_expr on conbin
// yields the same bare expression, without the CHECK wrapper or NOT VALID.
const checksQuery = `
	SELECT
		pct.conrelid AS oid,
		CASE WHEN substring(pct.conname FROM 1 FOR 1) = '$' THEN ''
			ELSE pct.conname::text
		END AS constraint_name,
		pg_catalog.pg_get_expr(pct.conbin, pct.conrelid) AS consrc
	FROM pg_catalog.pg_constraint pct
	JOIN pg_catalog.pg_class ON (pg_class.oid = pct.conrelid)
	WHERE pct.contype = 'c'
	ORDER BY pct.conrelid, pct.conname;
`

const inheritsQuery = `
	SELECT
		parcla.oid AS par_oid,
		parnsp.nspname::text AS par_schemaname,
		parcla.relname::text AS par_tablename,
		chlcla.oid AS chl_oid,
		chlnsp.nspname::text AS chl_schemaname,
		chlcla.relname::text AS chl_tablename
	FROM pg_catalog.pg_inherits
	JOIN pg_catalog.pg_class AS chlcla ON (chlcla.oid = inhrelid)
	JOIN pg_catalog.pg_namespace AS chlnsp ON (chlnsp.oid = chlcla.relnamespace)
	JOIN pg_catalog.pg_class AS parcla ON (parcla.oid = inhparent)
	JOIN pg_catalog.pg_namespace AS parnsp ON (parnsp.oid = parcla.relnamespace)
	ORDER BY parnsp.nspname, parcla.relname, chlnsp.nspname, chlcla.relname;
`
