package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	drepo "AvkuWeb/internal/domain/repository"
	xhttp "AvkuWeb/pkg/http"
)

// ErrBadLanguage is returned for codes that are not plain language tags.
var ErrBadLanguage = errors.New("invalid language code")

var langCodeRe = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]{2,8})?$`)

// ValidCode reports whether code can name a dictionary file.
func ValidCode(code string) bool {
	return langCodeRe.MatchString(code)
}

// DictionaryPath is the site-relative path of a dictionary.
func DictionaryPath(code string) string {
	return "lang/" + code + ".json"
}

// Decode parses a flat dictionary. Non-string values are dropped.
func Decode(b []byte) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}
	dict := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if json.Unmarshal(v, &s) == nil {
			dict[k] = s
		}
	}
	return dict, nil
}

// FSLoader reads dictionaries from lang/<code>.json inside a file system.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader serves dictionaries from fsys, typically os.DirFS(site dir).
func NewFSLoader(fsys fs.FS) drepo.DictionaryLoader {
	return &FSLoader{fsys: fsys}
}

// Load reads the dictionary fresh on every call.
func (l *FSLoader) Load(_ context.Context, lang string) (map[string]string, error) {
	if !ValidCode(lang) {
		return nil, fmt.Errorf("%w: %q", ErrBadLanguage, lang)
	}
	b, err := fs.ReadFile(l.fsys, DictionaryPath(lang))
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", lang, err)
	}
	return Decode(b)
}

// HTTPLoader fetches dictionaries from <base>/lang/<code>.json.
type HTTPLoader struct {
	base string
	http *xhttp.Client
}

// NewHTTPLoader creates a loader rooted at base. An empty base means "/".
func NewHTTPLoader(base string, client *xhttp.Client) drepo.DictionaryLoader {
	if client == nil {
		client = xhttp.NewClient()
	}
	return &HTTPLoader{base: JoinBase(base, ""), http: client}
}

// JoinBase joins base and path with exactly one slash, the way the page script does.
func JoinBase(base, path string) string {
	if base == "" {
		base = "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(path, "/")
}

// Load fetches the dictionary bypassing intermediate caches.
func (l *HTTPLoader) Load(ctx context.Context, lang string) (map[string]string, error) {
	if !ValidCode(lang) {
		return nil, fmt.Errorf("%w: %q", ErrBadLanguage, lang)
	}
	var body []byte
	err := l.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     JoinBase(l.base, DictionaryPath(lang)),
		Headers: map[string]string{"Cache-Control": "no-cache"},
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionary %s: %w", lang, err)
	}
	return Decode(body)
}
