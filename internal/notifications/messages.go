package notifications

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message identifies a user-facing cart notification.
type Message string

const (
	MessageOutOfStock         Message = "cart.out_of_stock"
	MessageAddFailed          Message = "cart.add_failed"
	MessageRemoveFailed       Message = "cart.remove_failed"
	MessageUpdateNotInCart    Message = "cart.update_not_in_cart"
	MessageUpdateAmountFailed Message = "cart.update_failed"
)

var supportedLocales = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
}

var translations = map[Message]map[language.Tag]string{
	MessageOutOfStock: {
		language.BrazilianPortuguese: "Quantidade solicitada fora de estoque",
		language.English:             "Requested quantity is out of stock",
	},
	MessageAddFailed: {
		language.BrazilianPortuguese: "Erro na adição do produto",
		language.English:             "Error adding the product",
	},
	MessageRemoveFailed: {
		language.BrazilianPortuguese: "Erro na remoção do produto",
		language.English:             "Error removing the product",
	},
	MessageUpdateNotInCart: {
		language.BrazilianPortuguese: "Erro na alteração de quantidade do produto",
		language.English:             "Error changing the product quantity",
	},
	MessageUpdateAmountFailed: {
		language.BrazilianPortuguese: "Erro na alteração da quantidade do produto",
		language.English:             "Error updating the product quantity",
	},
}

var (
	matcher        = language.NewMatcher(supportedLocales)
	defaultCatalog = mustBuildCatalog(translations)
)

// Localizer renders notification messages in a single locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer picks the closest supported locale. Unknown or empty locales fall back to pt-BR.
func NewLocalizer(locale string) *Localizer {
	tag := supportedLocales[0]
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		if parsed, err := language.Parse(trimmed); err == nil {
			_, idx, confidence := matcher.Match(parsed)
			if confidence != language.No {
				tag = supportedLocales[idx]
			}
		}
	}
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(defaultCatalog)),
	}
}

func mustBuildCatalog(table map[Message]map[language.Tag]string) catalog.Catalog {
	c, err := buildCatalog(table)
	if err != nil {
		panic(err)
	}
	return c
}

func buildCatalog(table map[Message]map[language.Tag]string) (catalog.Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(supportedLocales[0]))
	for key, byLocale := range table {
		for tag, text := range byLocale {
			if err := b.SetString(tag, string(key), text); err != nil {
				return nil, fmt.Errorf("catalog %s/%s: %w", key, tag, err)
			}
		}
	}
	return b, nil
}

// Text returns the localized text for msg.
func (l *Localizer) Text(msg Message) string {
	if l == nil {
		return translations[msg][supportedLocales[0]]
	}
	return l.printer.Sprintf(string(msg))
}

// Locale reports the BCP 47 tag in use.
func (l *Localizer) Locale() string {
	if l == nil {
		return supportedLocales[0].String()
	}
	return l.tag.String()
}
