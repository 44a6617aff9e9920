package encoder

// Attribute is a single entry of an encoded item's attribute list.
//
// Depending on which fields are set it is a marker (defindex only), a float
// attribute, a discrete attribute or a recipe output carrying its own attributes.
type Attribute struct {
	Defindex   int      `json:"defindex"`
	FloatValue *float64 `json:"float_value,omitempty"`
	Value      *int     `json:"value,omitempty"`

	IsOutput   bool        `json:"is_output,omitempty"`
	Quantity   int         `json:"quantity,omitempty"`
	ItemDef    int         `json:"itemdef,omitempty"`
	Quality    int         `json:"quality,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Item is the encoded item sent inside a listing body.
type Item struct {
	Defindex   int         `json:"defindex"`
	Quality    int         `json:"quality"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Marker returns an attribute that carries only its defindex.
func Marker(defindex int) Attribute {
	return Attribute{Defindex: defindex}
}

// Float returns an attribute with a float value.
func Float(defindex int, value float64) Attribute {
	return Attribute{Defindex: defindex, FloatValue: &value}
}

// Discrete returns an attribute with an integer value.
func Discrete(defindex int, value int) Attribute {
	return Attribute{Defindex: defindex, Value: &value}
}

// isMarker reports whether the attribute carries no value.
func (a Attribute) isMarker() bool {
	return a.FloatValue == nil && a.Value == nil && !a.IsOutput
}
