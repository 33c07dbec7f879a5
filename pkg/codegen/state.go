package codegen

import (
	"strings"

	"github.com/goliatone/go-formcode/pkg/model"
)

// StateDecl is a block of local state or refs a variant needs in the component
// body, plus the react hooks it relies on.
type StateDecl struct {
	Variant model.Variant
	Hooks   []string
	Lines   []string
}

// StateSet collects state declarations once per variant, in first-encounter
// order.
type StateSet struct {
	decls []StateDecl
	seen  map[model.Variant]struct{}
}

// CollectState walks entries and records the declarations their variants need.
func CollectState(entries []model.Entry) *StateSet {
	set := &StateSet{seen: make(map[model.Variant]struct{})}
	for _, field := range model.Flatten(entries) {
		set.Add(field.Variant)
	}
	return set
}

// Add records the declarations for variant, once.
func (s *StateSet) Add(variant model.Variant) {
	if _, ok := s.seen[variant]; ok {
		return
	}
	decl, ok := stateFor(variant)
	if !ok {
		return
	}
	s.seen[variant] = struct{}{}
	s.decls = append(s.decls, decl)
}

// Decls returns the recorded declarations.
func (s *StateSet) Decls() []StateDecl {
	out := make([]StateDecl, len(s.decls))
	copy(out, s.decls)
	return out
}

// Hooks returns the react hooks used by the declarations, deduplicated.
func (s *StateSet) Hooks() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, decl := range s.decls {
		for _, hook := range decl.Hooks {
			if _, ok := seen[hook]; ok {
				continue
			}
			seen[hook] = struct{}{}
			out = append(out, hook)
		}
	}
	return out
}

// Empty reports whether nothing was recorded.
func (s *StateSet) Empty() bool {
	return len(s.decls) == 0
}

// Source renders the declarations separated by blank lines, indented with
// indent.
func (s *StateSet) Source(indent string) string {
	blocks := make([]string, 0, len(s.decls))
	for _, decl := range s.decls {
		lines := make([]string, len(decl.Lines))
		for i, line := range decl.Lines {
			if line == "" {
				continue
			}
			lines[i] = indent + line
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func stateFor(variant model.Variant) (StateDecl, bool) {
	switch variant {
	case model.VariantFileInput:
		return StateDecl{
			Variant: variant,
			Hooks:   []string{"useState"},
			Lines: []string{
				"const [files, setFiles] = useState<File[] | null>(null);",
				"",
				"const dropZoneConfig = {",
				"  maxFiles: 5,",
				"  maxSize: 1024 * 1024 * 4,",
				"  multiple: true,",
				"};",
			},
		}, true
	case model.VariantSignatureInput:
		return StateDecl{
			Variant: variant,
			Hooks:   []string{"useRef"},
			Lines:   []string{"const canvasRef = useRef<HTMLCanvasElement>(null);"},
		}, true
	case model.VariantLocationInput:
		return StateDecl{
			Variant: variant,
			Hooks:   []string{"useState"},
			Lines: []string{
				`const [countryName, setCountryName] = useState<string>("");`,
				`const [stateName, setStateName] = useState<string>("");`,
			},
		}, true
	case model.VariantCreditCard:
		return StateDecl{
			Variant: variant,
			Hooks:   []string{"useState"},
			Lines: []string{
				"const [creditCard, setCreditCard] = useState({",
				`  cardholderName: "",`,
				`  cardNumber: "",`,
				`  expiryMonth: "",`,
				`  expiryYear: "",`,
				`  cvv: "",`,
				"});",
			},
		}, true
	case model.VariantCheckbox, model.VariantCombobox, model.VariantDatePicker,
		model.VariantDatetimePicker, model.VariantInput, model.VariantInputOTP,
		model.VariantMultiSelect, model.VariantPassword, model.VariantPhoneInput,
		model.VariantRadioGroup, model.VariantRating, model.VariantSelect,
		model.VariantSlider, model.VariantSmartDatetimeInput, model.VariantSwitch,
		model.VariantTagsInput, model.VariantTextarea:
		return StateDecl{}, false
	default:
		return StateDecl{}, false
	}
}
