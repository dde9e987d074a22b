package player

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const DefaultWelcomeText = `Welcome to Snake, {{ .ClientID | printf "player %d" }}! {{ .GridSize }}x{{ .GridSize }} {{ .Mode | lower }} board, {{ .Players }} already playing.`

var templateFuncs = sprig.TxtFuncMap()

// DefaultWelcome is used when no welcome message is configured.
var DefaultWelcome = MustWelcomeTemplate(DefaultWelcomeText)

// WelcomeData is what a welcome template can refer to.
type WelcomeData struct {
	ClientID int
	GridSize int
	Mode     string
	Players  int
}

type WelcomeTemplate struct {
	tmpl *template.Template
}

func NewWelcomeTemplate(text string) (*WelcomeTemplate, error) {
	tmpl, err := template.New("welcome").Funcs(templateFuncs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing welcome template: %w", err)
	}
	return &WelcomeTemplate{tmpl: tmpl}, nil
}

func MustWelcomeTemplate(text string) *WelcomeTemplate {
	t, err := NewWelcomeTemplate(text)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *WelcomeTemplate) Render(data WelcomeData) (string, error) {
	var sb strings.Builder
	err := t.tmpl.Execute(&sb, data)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}
