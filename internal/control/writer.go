package control

import "io"

// WriteTo serializes the record's stanza: fields named by the kind's output
// order come first, remaining fields follow in insertion order. Empty values
// are elided when the record's drop-empty setting is active.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	var total int64
	emitted := make(map[string]bool, r.Stanza.Len())

	emit := func(f Field) error {
		if r.dropEmpty && f.Value == "" {
			return nil
		}
		n, err := writeField(w, f)
		total += n
		return err
	}

	for _, name := range r.order {
		value, ok := r.Stanza.Get(name)
		if !ok {
			continue
		}
		emitted[name] = true
		if err := emit(Field{Name: name, Value: value}); err != nil {
			return total, err
		}
	}

	for _, f := range r.Stanza.Fields() {
		if emitted[f.Name] {
			continue
		}
		if err := emit(f); err != nil {
			return total, err
		}
	}

	return total, nil
}
