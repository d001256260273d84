package helpers

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/davidroman0O/gohooks"
	"github.com/davidroman0O/gohooks/store"
)

// ErrUnknownField is returned by input events of a field the form never
// rendered.
var ErrUnknownField = errors.New("unknown form field")

// InputType is the kind of a form input.
type InputType int

const (
	InputText InputType = iota
	InputPassword
)

// String implements fmt.Stringer.
func (t InputType) String() string {
	if t == InputPassword {
		return "password"
	}
	return "text"
}

// ValidateOn selects which events run an input's validators.
type ValidateOn int

const (
	// ValidateOnBoth validates on input and on blur.
	ValidateOnBoth ValidateOn = iota
	// ValidateOnInput validates on input only.
	ValidateOnInput
	// ValidateOnBlur validates on blur only.
	ValidateOnBlur
)

// Field is the state of one input.
type Field struct {
	Name    string
	Value   string
	Touched bool
	Valid   bool
	Errors  []string
}

// FormState holds every field rendered by a form, in render order.
type FormState struct {
	Fields []Field
}

// Field returns the field called name.
func (s FormState) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Values returns field values by name.
func (s FormState) Values() map[string]string {
	values := make(map[string]string, len(s.Fields))
	for _, field := range s.Fields {
		values[field.Name] = field.Value
	}
	return values
}

func (s *FormState) field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// Validator checks an input value. The error text is shown to the user.
type Validator func(value string) error

var (
	hasDigit  = regexp.MustCompile(`[0-9]`)
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasOther  = regexp.MustCompile(`[^0-9A-Za-z]`)
)

// Required rejects empty values.
func Required() Validator {
	return func(value string) error {
		if value == "" {
			return errors.New("this field cannot be empty")
		}
		return nil
	}
}

// LettersNumbersAndSpecial requires at least one letter, one digit and one
// other character.
func LettersNumbersAndSpecial() Validator {
	return func(value string) error {
		if !hasDigit.MatchString(value) || !hasLetter.MatchString(value) || !hasOther.MatchString(value) {
			return errors.New("this field needs at least one letter, one number and one special character")
		}
		return nil
	}
}

// FormOption configures UseForm.
type FormOption func(*FormControl)

// OnFormBlur registers fn to run after any input of the form loses focus,
// once that input's own callbacks and validators ran.
func OnFormBlur(fn func(FormState)) FormOption {
	return func(c *FormControl) {
		c.onBlur = fn
	}
}

// FormControl builds the inputs of a form kept by UseForm.
type FormControl struct {
	state  store.State[FormState]
	onBlur func(FormState)
}

// UseForm keeps the state of a form. Inputs are declared on every render
// through the returned control.
func UseForm(f *gohooks.Frame, opts ...FormOption) (FormState, FormControl) {
	var (
		st      FormState
		control FormControl
	)
	f.Call("form", func(f *gohooks.Frame) {
		st, control.state = gohooks.UseState(f, func() FormState { return FormState{} })
	})
	for _, opt := range opts {
		opt(&control)
	}
	return st, control
}

// State returns the current form state.
func (c FormControl) State() FormState {
	st, _ := c.state.Get()
	return st
}

// Errors returns the validation errors of the field called name.
func (c FormControl) Errors(name string) []string {
	field, _ := c.State().Field(name)
	return field.Errors
}

// Text starts a text input.
func (c FormControl) Text(name string) *Input {
	return &Input{form: c, name: name, typ: InputText}
}

// Password starts a password input.
func (c FormControl) Password(name string) *Input {
	return &Input{form: c, name: name, typ: InputPassword}
}

// Input configures one form input before it is rendered.
type Input struct {
	form       FormControl
	name       string
	typ        InputType
	value      string
	onBlur     func(value string)
	validators []Validator
	validateOn ValidateOn
}

// Default sets the value of the field when it is first rendered.
func (in *Input) Default(value string) *Input {
	in.value = value
	return in
}

// Required adds the Required validator.
func (in *Input) Required() *Input {
	return in.ValidateWith(Required())
}

// LettersNumbersAndSpecial adds the LettersNumbersAndSpecial validator.
func (in *Input) LettersNumbersAndSpecial() *Input {
	return in.ValidateWith(LettersNumbersAndSpecial())
}

// ValidateWith adds a validator.
func (in *Input) ValidateWith(v Validator) *Input {
	in.validators = append(in.validators, v)
	return in
}

// ValidateOnBlurOnly runs validators when the input loses focus only.
func (in *Input) ValidateOnBlurOnly() *Input {
	in.validateOn = ValidateOnBlur
	return in
}

// ValidateOnInputOnly runs validators on input only.
func (in *Input) ValidateOnInputOnly() *Input {
	in.validateOn = ValidateOnInput
	return in
}

// OnBlur registers fn to run with the field value when the input loses focus.
func (in *Input) OnBlur(fn func(value string)) *Input {
	in.onBlur = fn
	return in
}

// Binding is a rendered input: its current value and the events a front end
// calls. Events may run after the render that returned them.
type Binding struct {
	Name  string
	Type  InputType
	Value string
	// Input records a new value. It clears the field's errors and, unless the
	// input validates on blur only, validates the value.
	Input func(text string) error
	// Blur clears the field's errors, then runs the input's blur callback,
	// its validators unless it validates on input only, and the form's blur
	// callback, in that order.
	Blur func() error
}

// Render adds the field to the form on its first render and returns its
// binding.
func (in *Input) Render() (Binding, error) {
	value := in.value
	err := in.form.state.Update(func(st *FormState) {
		if field := st.field(in.name); field != nil {
			value = field.Value
			return
		}
		st.Fields = append(st.Fields, Field{Name: in.name, Value: in.value})
	})
	if err != nil {
		return Binding{}, fmt.Errorf("render field %q: %w", in.name, err)
	}

	return Binding{
		Name:  in.name,
		Type:  in.typ,
		Value: value,
		Input: in.input,
		Blur:  in.blur,
	}, nil
}

// edit applies fn to the field, failing when the form does not have it.
func (in *Input) edit(fn func(*Field)) error {
	found := false
	err := in.form.state.Update(func(st *FormState) {
		if field := st.field(in.name); field != nil {
			found = true
			fn(field)
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%q: %w", in.name, ErrUnknownField)
	}
	return nil
}

func (in *Input) input(text string) error {
	err := in.edit(func(field *Field) {
		field.Errors = nil
		if field.Value != text {
			field.Touched = true
			field.Value = text
		} else {
			field.Touched = false
		}
	})
	if err != nil {
		return err
	}

	if in.validateOn == ValidateOnBlur {
		return nil
	}
	return in.validate(text)
}

func (in *Input) blur() error {
	var value string
	err := in.edit(func(field *Field) {
		field.Errors = nil
		value = field.Value
	})
	if err != nil {
		return err
	}

	if in.onBlur != nil {
		in.onBlur(value)
	}
	if in.validateOn != ValidateOnInput {
		if err := in.validate(value); err != nil {
			return err
		}
	}
	if in.form.onBlur != nil {
		in.form.onBlur(in.form.State())
	}
	return nil
}

// validate runs the validators outside the store and records their errors.
func (in *Input) validate(value string) error {
	if len(in.validators) == 0 {
		return nil
	}

	var messages []string
	for _, v := range in.validators {
		if err := v(value); err != nil {
			messages = append(messages, err.Error())
		}
	}
	return in.edit(func(field *Field) {
		field.Errors = messages
		field.Valid = len(messages) == 0
	})
}
