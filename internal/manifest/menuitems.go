package manifest

import (
	"encoding/json"
	"encoding/xml"
)

// MenuItem is one entry of <menuitems>: the element name is the page's raw
// name and the text is its menu label.
type MenuItem struct {
	Key   string
	Label string
}

// MenuItems keeps menu entries in insertion order.
type MenuItems []MenuItem

// MarshalXML writes each item as <key>label</key> inside start.
func (mi MenuItems) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, item := range mi {
		el := xml.StartElement{Name: xml.Name{Local: item.Key}}
		if err := e.EncodeElement(item.Label, el); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML reads child elements back into items, in document order.
func (mi *MenuItems) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	*mi = nil
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var label string
			if err := d.DecodeElement(&label, &t); err != nil {
				return err
			}
			*mi = append(*mi, MenuItem{Key: t.Name.Local, Label: label})
		case xml.EndElement:
			return nil
		}
	}
}

// MarshalJSON renders items as an object for schema validation.
func (mi MenuItems) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(mi))
	for _, item := range mi {
		m[item.Key] = item.Label
	}
	return json.Marshal(m)
}
