package core

import (
	"context"

	"github.com/inovacc/consultas/internal/encoding"
	"github.com/inovacc/consultas/internal/model"
)

// Collection is the part of the store Export and Import need.
type Collection interface {
	ListAll(ctx context.Context) ([]model.Appointment, error)
	Upsert(ctx context.Context, a model.Appointment) error
}

// Export writes the whole collection to path as indented JSON in the
// stored format and returns the number of records written.
func Export(ctx context.Context, st Collection, path string) (int, error) {
	list, err := st.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	data, err := encoding.ToJSONIndent(list)
	if err != nil {
		return 0, err
	}

	if err := encoding.WriteFileAtomic(path, data); err != nil {
		return 0, err
	}

	return len(list), nil
}

// Import upserts every record of a JSON list file, keeping ids, and returns
// the number of records imported. Records without an id get a fresh one.
func Import(ctx context.Context, st Collection, path string) (int, error) {
	data, err := encoding.ReadFile(path)
	if err != nil {
		return 0, err
	}

	list, err := encoding.ParseJSONList[model.Appointment](data)
	if err != nil {
		return 0, err
	}

	if len(list) == 0 {
		return 0, ErrEmptyImport
	}

	for i, a := range list {
		if a.ID == "" {
			a.ID = NewID()
		}

		if err := st.Upsert(ctx, a); err != nil {
			return i, err
		}
	}

	return len(list), nil
}
