package game

// FieldKind is the JSON shape a schema field must take.
type FieldKind string

const (
	KindString     FieldKind = "string"
	KindStringList FieldKind = "string_list"
	KindActionList FieldKind = "action_list"
	KindBool       FieldKind = "bool"
	KindNumber     FieldKind = "number"
	KindStatus     FieldKind = "status"
)

// Field declares one field of a variant's response schema.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool

	// Enum restricts string-valued leaves. For KindStatus it lists
	// the allowed status values; for KindActionList it lists the
	// allowed action results (empty means actions are bare labels).
	Enum []string
}

// Schema enumerates the fields a model response must carry for one
// game variant. Unknown extra fields in a response are ignored.
type Schema struct {
	Fields []Field
}

// Field looks up a field declaration by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
