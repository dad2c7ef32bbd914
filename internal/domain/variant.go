package domain

// VariantTag is an IANA language subtag registry entry of type variant.
// It is linked to languages and locales by code matching.
type VariantTag struct {
	Entity

	Descriptions []string
	Added        string
	Prefixes     []string
	Comments     string

	Languages []*Language
	Locales   []*Locale
}

func (v *VariantTag) ObjectType() ObjectType { return ObjectVariantTag }

// Keyboard is a keyboard layout published for a locale.
type Keyboard struct {
	Entity

	LocaleCode string
	Platform   string

	Locale *Locale
}

func (k *Keyboard) ObjectType() ObjectType { return ObjectKeyboard }
