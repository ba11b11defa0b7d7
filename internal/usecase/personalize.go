package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"

	drepo "AvkuWeb/internal/domain/repository"
	"AvkuWeb/internal/service/i18n"
	"AvkuWeb/pkg/logger"
)

// PersonalizeRequest is everything a page request says about the visitor.
type PersonalizeRequest struct {
	Lang           string
	Cookie         string
	AcceptLanguage string
	NavOpen        bool
}

// PersonalizeResult is a rendered page. DictErr is set when the dictionary could
// not be loaded; the page is still served with its original text.
type PersonalizeResult struct {
	HTML       []byte
	Lang       string
	Translated int
	DictErr    error
}

// Personalizer renders the site page for one visitor.
type Personalizer struct {
	site       fs.FS
	page       string
	loader     drepo.DictionaryLoader
	negotiator *i18n.Negotiator
	log        *logger.Logger
}

// NewPersonalizer serves page from site, translated with dictionaries from loader.
func NewPersonalizer(site fs.FS, page string, loader drepo.DictionaryLoader, negotiator *i18n.Negotiator, log *logger.Logger) *Personalizer {
	if page == "" {
		page = "index.html"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Personalizer{site: site, page: page, loader: loader, negotiator: negotiator, log: log}
}

// Render reads the page fresh, resolves the language and applies the dictionary.
// Only an unreadable page is an error.
func (p *Personalizer) Render(ctx context.Context, req PersonalizeRequest) (*PersonalizeResult, error) {
	raw, err := fs.ReadFile(p.site, p.page)
	if err != nil {
		return nil, fmt.Errorf("read page %s: %w", p.page, err)
	}
	doc, err := i18n.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	lang := p.negotiator.Resolve(i18n.Preference{
		Query:          req.Lang,
		Cookie:         req.Cookie,
		AcceptLanguage: req.AcceptLanguage,
		PageDefault:    i18n.PageLang(doc),
	})

	res := &PersonalizeResult{Lang: lang}
	dict, err := p.loader.Load(ctx, lang)
	if err != nil {
		res.DictErr = err
		dict = nil
		p.log.Warn("dictionary unavailable, serving page untranslated",
			logger.String("lang", lang),
			logger.Error(err),
		)
	}

	stats := i18n.Apply(doc, i18n.PageState{Lang: lang, Dict: dict, NavOpen: req.NavOpen})
	res.Translated = stats.Translated

	res.HTML, err = i18n.Render(doc)
	if err != nil {
		return nil, err
	}
	return res, nil
}
