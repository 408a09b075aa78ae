package models

import "github.com/s/librekpi/internal/jsoncol"

type encoder interface {
	Encoded() (*string, error)
}

type jsonColumn struct {
	name  string
	value encoder
	width int
}

// checkWidths encodes each structured column and rejects values wider than
// the column.
func checkWidths(cols ...jsonColumn) error {
	for _, c := range cols {
		text, err := c.value.Encoded()
		if err != nil {
			return err
		}
		if err := jsoncol.CheckWidth(c.name, text, c.width); err != nil {
			return err
		}
	}
	return nil
}
