package schema

import (
	"strconv"
	"strings"
)

// SchemaVariable is the identifier the generated schema is bound to.
const SchemaVariable = "formSchema"

const creditCardMessage = "Please complete all credit card fields."

// Source renders the object as a zod schema declaration:
//
//	const formSchema = z.object({
//	  email: z.string().email(),
//	});
func Source(obj Object) string {
	var b strings.Builder
	b.WriteString("const ")
	b.WriteString(SchemaVariable)
	b.WriteString(" = ")
	b.WriteString(ObjectExpression(obj, ""))
	b.WriteString(";\n")
	return b.String()
}

// ObjectExpression renders the z.object({...}) expression, indenting property
// lines with indent plus two spaces.
func ObjectExpression(obj Object, indent string) string {
	if len(obj.Properties) == 0 {
		return "z.object({})"
	}
	inner := indent + "  "
	var b strings.Builder
	b.WriteString("z.object({\n")
	for _, prop := range obj.Properties {
		b.WriteString(inner)
		b.WriteString(PropertyKey(prop.Name))
		b.WriteString(": ")
		b.WriteString(prop.Node.expression(inner))
		b.WriteString(",\n")
	}
	b.WriteString(indent)
	b.WriteString("})")
	return b.String()
}

// Expression renders a single node as a zod expression.
func (n Node) Expression() string {
	return n.expression("")
}

func (n Node) expression(indent string) string {
	var b strings.Builder
	switch n.Kind {
	case KindBoolean:
		b.WriteString("z.boolean()")
		if n.MustBeTrue {
			b.WriteString(`.refine((value) => value === true, { message: "This field must be checked." })`)
		}
		if n.Default != nil {
			b.WriteString(".default(")
			b.WriteString(literal(n.Default))
			b.WriteString(")")
		}
	case KindDate:
		if n.Coerce {
			b.WriteString("z.coerce.date()")
		} else {
			b.WriteString("z.date()")
		}
	case KindNumber:
		if n.Coerce {
			b.WriteString("z.coerce.number()")
		} else {
			b.WriteString("z.number()")
		}
		if n.Min != nil {
			b.WriteString(".min(" + formatFloat(*n.Min) + ")")
		}
		if n.Max != nil {
			b.WriteString(".max(" + formatFloat(*n.Max) + ")")
		}
	case KindArray:
		items := Node{Kind: KindString}
		if n.Items != nil {
			items = *n.Items
		}
		b.WriteString("z.array(" + items.expression(indent) + ")")
		if n.Nonempty {
			b.WriteString(`.nonempty("Please select at least one item")`)
		}
	case KindTuple:
		parts := make([]string, len(n.Elements))
		for i, element := range n.Elements {
			parts[i] = element.expression(indent)
		}
		b.WriteString("z.tuple([" + strings.Join(parts, ", ") + "])")
	default:
		b.WriteString("z.string()")
		switch n.Format {
		case FormatEmail:
			b.WriteString(".email()")
		case FormatURL:
			b.WriteString(".url()")
		}
		if n.MinLength != nil {
			b.WriteString(".min(" + strconv.Itoa(*n.MinLength) + ")")
		}
		if n.MaxLength != nil {
			b.WriteString(".max(" + strconv.Itoa(*n.MaxLength) + ")")
		}
		if n.CreditCard {
			b.WriteString(creditCardRefinement(indent))
		}
	}
	if n.Optional {
		b.WriteString(".optional()")
	}
	return b.String()
}

func creditCardRefinement(indent string) string {
	keys := make([]string, len(CreditCardKeys))
	for i, key := range CreditCardKeys {
		keys[i] = strconv.Quote(key)
	}
	lines := []string{
		".refine(",
		"  (value) => {",
		"    try {",
		"      const card = JSON.parse(value);",
		"      return [" + strings.Join(keys, ", ") + "].every(",
		`        (key) => typeof card?.[key] === "string" && card[key].trim().length > 0`,
		"      );",
		"    } catch {",
		"      return false;",
		"    }",
		"  },",
		"  { message: " + strconv.Quote(creditCardMessage) + " }",
		")",
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(indent)
		}
		b.WriteString(line)
	}
	return b.String()
}

// PropertyKey renders name as an object-literal key, quoting names that are not
// valid identifiers (for example "first-name").
func PropertyKey(name string) string {
	if IsIdentifier(name) {
		return name
	}
	return strconv.Quote(name)
}

// Accessor renders a member access on base, falling back to bracket notation
// for names that are not identifiers: errors.email, errors["first-name"].
func Accessor(base, name string) string {
	if IsIdentifier(name) {
		return base + "." + name
	}
	return base + "[" + strconv.Quote(name) + "]"
}

// IsIdentifier reports whether name is a valid JavaScript identifier made of
// ASCII letters, digits, '_' and '$'.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func literal(value any) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case string:
		return strconv.Quote(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return formatFloat(v)
	default:
		return "undefined"
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
