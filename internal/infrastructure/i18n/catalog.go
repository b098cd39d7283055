// Package i18n localizes the customer-facing status phrases the storefront
// displays. English is the source language; Hindi covers the primary
// customer base. Unknown locales and unregistered phrases fall back to
// the English string unchanged.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// supported lists the locales with registered translations; the first entry
// is the fallback.
var supported = []language.Tag{
	language.English,
	language.Hindi,
}

// phraseTranslations maps each customer-facing phrase to its Hindi
// rendering. English needs no entry; the phrase itself is the source string.
var phraseTranslations = map[string]string{
	"Order Placed":        "ऑर्डर प्राप्त हुआ",
	"Start Production":    "उत्पादन शुरू",
	"Finish Production":   "उत्पादन पूर्ण",
	"Mark As Packed":      "पैक किया गया",
	"Dispatched":          "भेज दिया गया",
	"Delivered":           "डिलीवर हो गया",
	"Edit Measurements":   "माप संशोधित",
	"Feedback Received":   "प्रतिक्रिया प्राप्त",
	"Measurement Updated": "माप अपडेट किया गया",

	"Fit Sample - Start Production":    "फ़िट सैंपल - उत्पादन शुरू",
	"Fit Sample - Finish Production":   "फ़िट सैंपल - उत्पादन पूर्ण",
	"Fit Sample - Mark As Packed":      "फ़िट सैंपल - पैक किया गया",
	"Fit Sample - Dispatched":          "फ़िट सैंपल - भेज दिया गया",
	"Fit Sample - Delivered":           "फ़िट सैंपल - डिलीवर हो गया",
	"Fit Sample - Measurement Updated": "फ़िट सैंपल - माप अपडेट किया गया",
	"Fit Sample - Feedback Received":   "फ़िट सैंपल - प्रतिक्रिया प्राप्त",

	"Original Order - Start Production":  "मूल ऑर्डर - उत्पादन शुरू",
	"Original Order - Finish Production": "मूल ऑर्डर - उत्पादन पूर्ण",
	"Original Order - Mark As Packed":    "मूल ऑर्डर - पैक किया गया",
	"Original Order - Dispatched":        "मूल ऑर्डर - भेज दिया गया",
	"Original Order - Order Completed":   "मूल ऑर्डर - ऑर्डर पूर्ण",
}

// Translator resolves a customer locale and translates status phrases
type Translator struct {
	matcher language.Matcher
	catalog catalog.Catalog
}

// NewTranslator builds the phrase catalog
func NewTranslator() (*Translator, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))

	for phrase, hindi := range phraseTranslations {
		if err := builder.SetString(language.English, phrase, phrase); err != nil {
			return nil, err
		}
		if err := builder.SetString(language.Hindi, phrase, hindi); err != nil {
			return nil, err
		}
	}

	return &Translator{
		matcher: language.NewMatcher(supported),
		catalog: builder,
	}, nil
}

// Phrase translates one status phrase for the locale named by an
// Accept-Language header value. Unregistered phrases pass through verbatim.
func (t *Translator) Phrase(acceptLanguage, phrase string) string {
	tag := t.Match(acceptLanguage)
	printer := message.NewPrinter(tag, message.Catalog(t.catalog))
	return printer.Sprintf(phrase)
}

// Match resolves an Accept-Language header value to a supported locale
func (t *Translator) Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return supported[0]
	}
	tag, _ := language.MatchStrings(t.matcher, acceptLanguage)
	return tag
}
