package codegen

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formcode/pkg/model"
)

// PrimitiveImports returns the UI imports a variant renders with. Compound
// primitives list every sub-part so they are emitted once per file.
func PrimitiveImports(variant model.Variant, tokens Tokens) []Import {
	ui := func(module string, names ...string) Import {
		return Import{Module: tokens.UIModule(module), Names: names}
	}
	switch variant {
	case model.VariantCheckbox:
		return []Import{ui("checkbox", "Checkbox")}
	case model.VariantCombobox:
		return []Import{ui("combobox", "Combobox")}
	case model.VariantCreditCard:
		return []Import{ui("credit-card", "CreditCard")}
	case model.VariantDatePicker:
		return []Import{ui("date-picker", "DatePicker")}
	case model.VariantDatetimePicker:
		return []Import{ui("datetime-picker", "DatetimePicker")}
	case model.VariantFileInput:
		return []Import{
			ui("file-upload", "FileInput", "FileUploader", "FileUploaderContent", "FileUploaderItem"),
			{Module: "lucide-react", Names: []string{"CloudUpload", "Paperclip"}},
		}
	case model.VariantInput:
		return []Import{ui("input", "Input")}
	case model.VariantInputOTP:
		return []Import{ui("input-otp", "InputOTP", "InputOTPGroup", "InputOTPSlot")}
	case model.VariantLocationInput:
		return []Import{ui("location-input", "LocationSelector")}
	case model.VariantMultiSelect:
		return []Import{ui("multi-select",
			"MultiSelector", "MultiSelectorContent", "MultiSelectorInput",
			"MultiSelectorItem", "MultiSelectorList", "MultiSelectorTrigger")}
	case model.VariantPassword:
		return []Import{ui("password-input", "PasswordInput")}
	case model.VariantPhoneInput:
		return []Import{ui("phone-input", "PhoneInput")}
	case model.VariantRadioGroup:
		return []Import{ui("radio-group", "RadioGroup", "RadioGroupItem"), ui("label", "Label")}
	case model.VariantRating:
		return []Import{ui("rating", "Rating")}
	case model.VariantSelect:
		return []Import{ui("select", "Select", "SelectContent", "SelectItem", "SelectTrigger", "SelectValue")}
	case model.VariantSignatureInput:
		return []Import{ui("signature-input", "SignatureInput")}
	case model.VariantSlider:
		return []Import{ui("slider", "Slider")}
	case model.VariantSmartDatetimeInput:
		return []Import{ui("smart-datetime-input", "SmartDatetimeInput")}
	case model.VariantSwitch:
		return []Import{ui("switch", "Switch")}
	case model.VariantTagsInput:
		return []Import{ui("tags-input", "TagsInput")}
	case model.VariantTextarea:
		return []Import{ui("textarea", "Textarea")}
	default:
		return []Import{ui("input", "Input")}
	}
}

// IsControlled reports whether a variant binds through Binding.Controlled or
// Binding.Setter rather than native attributes.
func IsControlled(variant model.Variant) bool {
	switch variant {
	case model.VariantCheckbox, model.VariantCombobox, model.VariantCreditCard,
		model.VariantDatePicker, model.VariantDatetimePicker, model.VariantInputOTP,
		model.VariantLocationInput, model.VariantMultiSelect, model.VariantPhoneInput,
		model.VariantRadioGroup, model.VariantRating, model.VariantSelect,
		model.VariantSignatureInput, model.VariantSlider, model.VariantSmartDatetimeInput,
		model.VariantSwitch, model.VariantTagsInput:
		return true
	case model.VariantFileInput, model.VariantInput, model.VariantPassword, model.VariantTextarea:
		return false
	default:
		return false
	}
}

func isInline(variant model.Variant) bool {
	switch variant {
	case model.VariantCheckbox, model.VariantSwitch:
		return true
	default:
		return false
	}
}

// renderPrimitive returns the markup of the input primitive for field and
// whether it went through the binding's controlled path.
func renderPrimitive(field model.Field, b Binding) (string, bool) {
	controlled := b.Setter(field, "value") != ""
	id := StringAttr("id", field.Name)

	switch field.Variant {
	case model.VariantCheckbox:
		attrs := []string{id}
		attrs = append(attrs, b.Controlled(field, Control{Value: "checked", Change: "onCheckedChange"})...)
		return element("Checkbox", withDisabled(field, attrs)), controlled

	case model.VariantSwitch:
		attrs := []string{id}
		attrs = append(attrs, b.Controlled(field, Control{Value: "checked", Change: "onCheckedChange"})...)
		return element("Switch", withDisabled(field, attrs)), controlled

	case model.VariantSelect:
		attrs := b.Controlled(field, Control{Value: "value", Change: "onValueChange"})
		items := make([]string, 0)
		for _, opt := range field.ChoiceOptions() {
			items = append(items, textElement("SelectItem", []string{StringAttr("value", opt.Value)}, optionLabel(opt)))
		}
		trigger := element("SelectTrigger", []string{id},
			element("SelectValue", []string{StringAttr("placeholder", placeholderOr(field, "Select an option"))}))
		return element("Select", withDisabled(field, attrs), trigger, element("SelectContent", nil, items...)), controlled

	case model.VariantRadioGroup:
		attrs := []string{id}
		attrs = append(attrs, b.Controlled(field, Control{Value: "value", Change: "onValueChange"})...)
		attrs = append(attrs, StringAttr("className", "flex flex-col space-y-1"))
		var items []string
		for _, opt := range field.ChoiceOptions() {
			itemID := field.Name + "-" + opt.Value
			items = append(items, element("div", []string{StringAttr("className", "flex items-center space-x-3")},
				element("RadioGroupItem", []string{StringAttr("value", opt.Value), StringAttr("id", itemID)}),
				textElement("Label", []string{StringAttr("htmlFor", itemID), StringAttr("className", "font-normal")}, optionLabel(opt)),
			))
		}
		return element("RadioGroup", withDisabled(field, attrs), items...), controlled

	case model.VariantSlider:
		attrs := []string{
			id,
			ExprAttr("min", number(field.Min, 0)),
			ExprAttr("max", number(field.Max, 100)),
			ExprAttr("step", number(field.Step, 1)),
		}
		attrs = append(attrs, b.Controlled(field, Control{Value: "value", Change: "onValueChange", In: "[%s]", Out: "%s[0]"})...)
		return element("Slider", withDisabled(field, attrs)), controlled

	case model.VariantCombobox:
		attrs := []string{id, ExprAttr("options", optionsLiteral(field.ChoiceOptions()))}
		attrs = append(attrs, StringAttr("placeholder", placeholderOr(field, "Select an option")))
		attrs = append(attrs, b.Controlled(field, Control{Value: "value", Change: "onValueChange"})...)
		return element("Combobox", withDisabled(field, attrs)), controlled

	case model.VariantMultiSelect:
		attrs := b.Controlled(field, Control{Value: "values", Change: "onValuesChange"})
		attrs = append(attrs, "loop", StringAttr("className", "max-w-xs"))
		var items []string
		for _, opt := range field.ChoiceOptions() {
			items = append(items, textElement("MultiSelectorItem", []string{StringAttr("value", opt.Value)}, optionLabel(opt)))
		}
		trigger := element("MultiSelectorTrigger", []string{id},
			element("MultiSelectorInput", []string{StringAttr("placeholder", placeholderOr(field, "Select options"))}))
		content := element("MultiSelectorContent", nil, element("MultiSelectorList", nil, items...))
		return element("MultiSelector", withDisabled(field, attrs), trigger, content), controlled

	case model.VariantTagsInput:
		attrs := []string{id}
		attrs = append(attrs, b.Controlled(field, Control{Value: "value", Change: "onValueChange"})...)
		attrs = append(attrs, StringAttr("placeholder", placeholderOr(field, "Enter your tags")))
		return element("TagsInput", withDisabled(field, attrs)), controlled

	case model.VariantDatePicker:
		attrs := []string{id}
		attrs = append(attrs, b.Controlled(field, Control{Value: "value", Change: "onChange"})...)
		return element("DatePicker", withDisabled(field, attrs)), controlled

	case model.VariantDatetimePicker:
		attrs := []string{id}
		attrs = append(attrs, b.Controlled(field, Control{Value: "value", Change: "onChange"})...)
		attrs = append(attrs, ExprAttr("hourCycle", hourCycle(field)))
		return element("DatetimePicker", withDisabled(field, attrs)), controlled

	case model.VariantSmartDatetimeInput:
		attrs := []string{id}
		attrs = append(attrs, b.Controlled(field, Control{Value: "value", Change: "onValueChange"})...)
		attrs = append(attrs, StringAttr("placeholder", placeholderOr(field, "e.g. Tomorrow morning 9am")))
		if field.Locale != "" {
			attrs = append(attrs, StringAttr("locale", field.Locale))
		}
		if field.Hour12 {
			attrs = append(attrs, "hour12")
		}
		return element("SmartDatetimeInput", withDisabled(field, attrs)), controlled

	case model.VariantFileInput:
		return fileUploader(field), false

	case model.VariantInputOTP:
		length := 6
		if field.Max != nil && *field.Max > 0 {
			length = int(*field.Max)
		}
		attrs := []string{id, ExprAttr("maxLength", strconv.Itoa(length))}
		attrs = append(attrs, b.Controlled(field, Control{Value: "value", Change: "onChange"})...)
		slots := make([]string, length)
		for i := range slots {
			slots[i] = element("InputOTPSlot", []string{ExprAttr("index", strconv.Itoa(i))})
		}
		return element("InputOTP", withDisabled(field, attrs), element("InputOTPGroup", nil, slots...)), controlled

	case model.VariantLocationInput:
		return locationSelector(field, b), controlled

	case model.VariantPhoneInput:
		attrs := []string{id}
		attrs = append(attrs, b.Controlled(field, Control{Value: "value", Change: "onChange"})...)
		attrs = append(attrs, StringAttr("placeholder", placeholderOr(field, "Enter a phone number")))
		if field.Locale != "" {
			attrs = append(attrs, StringAttr("defaultCountry", strings.ToUpper(field.Locale)))
		}
		return element("PhoneInput", withDisabled(field, attrs)), controlled

	case model.VariantRating:
		attrs := []string{id}
		attrs = append(attrs, b.Controlled(field, Control{Value: "value", Change: "onValueChange", In: "Number(%s)", Out: "String(%s)"})...)
		return element("Rating", withDisabled(field, attrs)), controlled

	case model.VariantSignatureInput:
		attrs := []string{id, ExprAttr("canvasRef", "canvasRef")}
		attrs = append(attrs, b.Controlled(field, Control{Change: "onSignatureChange", Out: `%s ?? ""`})...)
		return element("SignatureInput", withDisabled(field, attrs)), controlled

	case model.VariantCreditCard:
		return creditCard(field, b), controlled

	case model.VariantPassword:
		attrs := []string{id}
		if field.Placeholder != "" {
			attrs = append(attrs, StringAttr("placeholder", field.Placeholder))
		}
		attrs = append(attrs, b.Native(field)...)
		return element("PasswordInput", withDisabled(field, attrs)), false

	case model.VariantTextarea:
		attrs := []string{id}
		if field.Placeholder != "" {
			attrs = append(attrs, StringAttr("placeholder", field.Placeholder))
		}
		attrs = append(attrs, StringAttr("className", "resize-none"))
		attrs = append(attrs, b.Native(field)...)
		return element("Textarea", withDisabled(field, attrs)), false

	case model.VariantInput:
		return textInput(field, b), false

	default:
		return textInput(field, b), false
	}
}

func textInput(field model.Field, b Binding) string {
	attrs := []string{StringAttr("id", field.Name)}
	if field.Variant == model.VariantInput && field.Type != "" && field.Type != model.InputTypeText {
		attrs = append(attrs, StringAttr("type", string(field.Type)))
	}
	if field.Placeholder != "" {
		attrs = append(attrs, StringAttr("placeholder", field.Placeholder))
	}
	if field.Variant == model.VariantInput && field.Type == model.InputTypeNumber {
		if field.Min != nil {
			attrs = append(attrs, ExprAttr("min", formatNumber(*field.Min)))
		}
		if field.Max != nil {
			attrs = append(attrs, ExprAttr("max", formatNumber(*field.Max)))
		}
		if field.Step != nil {
			attrs = append(attrs, ExprAttr("step", formatNumber(*field.Step)))
		}
	}
	attrs = append(attrs, b.Native(field)...)
	return element("Input", withDisabled(field, attrs))
}

func fileUploader(field model.Field) string {
	attrs := []string{
		StringAttr("id", field.Name),
		ExprAttr("value", "files"),
		ExprAttr("onValueChange", "setFiles"),
		ExprAttr("dropzoneOptions", "dropZoneConfig"),
		StringAttr("className", "relative bg-background rounded-lg p-2"),
	}
	dropArea := element("FileInput", []string{StringAttr("className", "outline-dashed outline-1 outline-slate-500")},
		element("div", []string{StringAttr("className", "flex items-center justify-center flex-col p-8 w-full")},
			element("CloudUpload", []string{StringAttr("className", "text-gray-500 w-10 h-10")}),
			element("p", []string{StringAttr("className", "mb-1 text-sm text-gray-500 dark:text-gray-400")},
				textElement("span", []string{StringAttr("className", "font-semibold")}, "Click to upload"),
				"&nbsp; or drag and drop",
			),
			textElement("p", []string{StringAttr("className", "text-xs text-gray-500 dark:text-gray-400")}, "SVG, PNG, JPG or GIF"),
		),
	)
	listing := strings.Join([]string{
		"{files &&",
		"  files.length > 0 &&",
		"  files.map((file, i) => (",
		"    <FileUploaderItem key={i} index={i}>",
		`      <Paperclip className="h-4 w-4 stroke-current" />`,
		"      <span>{file.name}</span>",
		"    </FileUploaderItem>",
		"  ))}",
	}, "\n")
	return element("FileUploader", withDisabled(field, attrs), dropArea, element("FileUploaderContent", nil, listing))
}

func locationSelector(field model.Field, b Binding) string {
	countrySet := b.Setter(field, `[country?.name || "", stateName || ""]`)
	stateSet := b.Setter(field, `[countryName || "", state?.name || ""]`)

	handler := func(param, local, update string) string {
		lines := []string{"(" + param + ") => {", "  " + local + "(" + param + `?.name || "");`}
		if update != "" {
			lines = append(lines, "  "+update+";")
		}
		lines = append(lines, "}")
		return strings.Join(lines, "\n")
	}

	lines := []string{
		"<LocationSelector",
		"  " + StringAttr("id", field.Name),
		Indent("onCountryChange={"+handler("country", "setCountryName", countrySet)+"}", 2),
		Indent("onStateChange={"+handler("state", "setStateName", stateSet)+"}", 2),
	}
	if field.Disabled {
		lines = append(lines, "  disabled")
	}
	lines = append(lines, "/>")
	markup := strings.Join(lines, "\n")
	if countrySet != "" {
		return markup
	}
	return strings.Join([]string{
		markup,
		element("input", []string{StringAttr("type", "hidden"), NameAttr(field), ExprAttr("value", "countryName")}),
		element("input", []string{StringAttr("type", "hidden"), NameAttr(field), ExprAttr("value", "stateName")}),
	}, "\n")
}

func creditCard(field model.Field, b Binding) string {
	update := b.Setter(field, "JSON.stringify(card)")
	lines := []string{"<CreditCard", "  " + StringAttr("id", field.Name), "  value={creditCard}"}
	if update != "" {
		lines = append(lines,
			"  onChange={(card) => {",
			"    setCreditCard(card);",
			"    "+update+";",
			"  }}",
		)
	} else {
		lines = append(lines, "  onChange={setCreditCard}")
	}
	if field.Disabled {
		lines = append(lines, "  disabled")
	}
	lines = append(lines, "/>")
	markup := strings.Join(lines, "\n")
	if update != "" {
		return markup
	}
	return markup + "\n" + element("input", []string{
		StringAttr("type", "hidden"),
		NameAttr(field),
		ExprAttr("value", "JSON.stringify(creditCard)"),
	})
}

func element(tag string, attrs []string, children ...string) string {
	open := "<" + tag
	if len(attrs) > 0 {
		open += " " + strings.Join(attrs, " ")
	}
	if len(children) == 0 {
		return open + " />"
	}
	var b strings.Builder
	b.WriteString(open)
	b.WriteString(">\n")
	for _, child := range children {
		b.WriteString(Indent(child, 2))
		b.WriteString("\n")
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

func textElement(tag string, attrs []string, text string) string {
	open := "<" + tag
	if len(attrs) > 0 {
		open += " " + strings.Join(attrs, " ")
	}
	return open + ">" + text + "</" + tag + ">"
}

func withDisabled(field model.Field, attrs []string) []string {
	if field.Disabled {
		return append(attrs, "disabled")
	}
	return attrs
}

func placeholderOr(field model.Field, fallback string) string {
	if strings.TrimSpace(field.Placeholder) != "" {
		return field.Placeholder
	}
	return fallback
}

func optionLabel(opt model.Option) string {
	if strings.TrimSpace(opt.Label) != "" {
		return Text(opt.Label)
	}
	return Text(opt.Value)
}

func optionsLiteral(options []model.Option) string {
	parts := make([]string, len(options))
	for i, opt := range options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		parts[i] = "{ label: " + JSString(label) + ", value: " + JSString(opt.Value) + " }"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func number(value *float64, fallback float64) string {
	if value == nil {
		return formatNumber(fallback)
	}
	return formatNumber(*value)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func hourCycle(field model.Field) string {
	if field.Hour12 {
		return "12"
	}
	return "24"
}
