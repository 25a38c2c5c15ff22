package seo

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

// JSONLD renders data as a <script type="application/ld+json"> element.
// json.Marshal escapes <, > and & so the payload cannot close the script.
func JSONLD(data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<script type="application/ld+json">`); err != nil {
			return err
		}
		if _, err := w.Write(payload); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</script>`)
		return err
	})
}

// ScriptTags renders every payload with JSONLD for use inside html/template layouts.
func ScriptTags(ctx context.Context, payloads ...any) (template.HTML, error) {
	var buf bytes.Buffer
	for _, p := range payloads {
		if p == nil {
			continue
		}
		if err := JSONLD(p).Render(ctx, &buf); err != nil {
			return "", err
		}
	}
	return template.HTML(buf.String()), nil
}
