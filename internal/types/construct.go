package types

// ConstructKind categorizes the Ruby declarations we can document
type ConstructKind int

const (
	KindMethod ConstructKind = iota
	KindConstant
	KindModuleOrClass
	KindAttribute
	KindField       // Mongoid field
	KindAssociation // has_many, belongs_to, embeds_one, ...
	KindValidation  // validate, validates_presence_of, ...
	KindDelegate
)

func (k ConstructKind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindConstant:
		return "constant"
	case KindModuleOrClass:
		return "module_or_class"
	case KindAttribute:
		return "attribute"
	case KindField:
		return "field"
	case KindAssociation:
		return "association"
	case KindValidation:
		return "validation"
	case KindDelegate:
		return "delegate"
	default:
		return "unknown"
	}
}

// Construct is a declaration recognized on a single line of Ruby source.
// Only the fields relevant to Kind are populated.
type Construct struct {
	Kind   ConstructKind
	Indent string // Leading whitespace of the declaring line
	Line   int    // 0-indexed buffer line, set by the caller

	// Method
	Name    string // method, constant, module/class or attribute name
	Args    string // raw parameter list, without parentheses
	HasArgs bool   // false for `def foo`, true for `def foo()` and `def foo a`

	// Module/class, attribute and model macros
	Keyword string // "module", "class", "attr_reader", "has_many", ...
}

// AttributeMode returns the YARD access mode for an attribute keyword
func (c *Construct) AttributeMode() (string, bool) {
	switch c.Keyword {
	case "attr_reader":
		return "r", true
	case "attr_writer":
		return "w", true
	case "attr_accessor":
		return "rw", true
	default:
		return "", false
	}
}

// IsConstructor reports whether the method is Ruby's initializer
func (c *Construct) IsConstructor() bool {
	return c.Kind == KindMethod && c.Name == "initialize"
}

