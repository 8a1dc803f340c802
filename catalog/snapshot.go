package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot holds every catalog row set in memory. It is written by the dump
// command and implements Source so diagrams can be rendered offline.
type Snapshot struct {
	TableRows      []TableRow      `yaml:"tables"`
	ColumnRows     []ColumnRow     `yaml:"columns"`
	KeyRows        []KeyRow        `yaml:"keys"`
	ForeignKeyRows []ForeignKeyRow `yaml:"foreign_keys"`
	CheckRows      []CheckRow      `yaml:"checks"`
	InheritRows    []InheritRow    `yaml:"inherits"`
}

var _ Source = (*Snapshot)(nil)

func LoadSnapshot(filename string) (*Snapshot, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}

func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if err == io.EOF {
			return &s, nil
		}
		return nil, fmt.Errorf("unmarshalling snapshot: %w", err)
	}
	return &s, nil
}

// Capture reads all row sets from src in pass order.
func Capture(ctx context.Context, src Source) (*Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	if s.TableRows, err = src.Tables(ctx); err != nil {
		return nil, err
	}
	if s.ColumnRows, err = src.Columns(ctx); err != nil {
		return nil, err
	}
	if s.KeyRows, err = src.Keys(ctx); err != nil {
		return nil, err
	}
	if s.ForeignKeyRows, err = src.ForeignKeys(ctx); err != nil {
		return nil, err
	}
	if s.CheckRows, err = src.Checks(ctx); err != nil {
		return nil, err
	}
	if s.InheritRows, err = src.Inherits(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Snapshot) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}
	return enc.Close()
}

func (s *Snapshot) Tables(context.Context) ([]TableRow, error) { return s.TableRows, nil }

func (s *Snapshot) Columns(context.Context) ([]ColumnRow, error) { return s.ColumnRows, nil }

func (s *Snapshot) Keys(context.Context) ([]KeyRow, error) { return s.KeyRows, nil }

func (s *Snapshot) ForeignKeys(context.Context) ([]ForeignKeyRow, error) {
	return s.ForeignKeyRows, nil
}

func (s *Snapshot) Checks(context.Context) ([]CheckRow, error) { return s.CheckRows, nil }

func (s *Snapshot) Inherits(context.Context) ([]InheritRow, error) { return s.InheritRows, nil }
