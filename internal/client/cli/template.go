package cli

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/views"
	"github.com/iudanet/credadmin/internal/models"
)

const credentialTemplate = `
=== Credential {{ .IDValue }} ===

Login:          {{ .Login }}
Password hash:  {{ dash .PasswordHash }}
Last login:     {{ date .LastLoginDate }}
Activation key: {{ dash .ActivationKey }}
Reset key:      {{ dash .ResetKey }}
Reset date:     {{ date .ResetDate }}
Activated:      {{ yesno .Activated }}
Primary:        {{ yesno .Primary }}
Owner:          {{ dash .UserLogin }}
`

const credentialsListTemplate = `
=== Credentials{{ if .Query }} matching "{{ .Query }}"{{ end }} ===
{{- if .Err }}

Error: {{ describe .Err }}
{{- end }}
{{- if eq (len .Records) 0 }}

No credentials found.
{{- if not .Query }}

Use 'credadmin new' to add the first credential.
{{- end }}
{{ else }}

Found {{ len .Records }} credential(s):
{{ range .Records }}
- #{{ .IDValue }} {{ .Login }}{{ if .UserLogin }} (owner: {{ .UserLogin }}){{ end }}
   Activated: {{ yesno .Activated }}  Primary: {{ yesno .Primary }}
{{- end }}

Use 'credadmin view <id>' to see full details.
{{ end -}}
`

const shellHelpTemplate = `
Commands:
  list                 Reload the list
  search <query>       Search credentials
  clear                Leave search mode
  view <id>            Show credential details
  new                  Create a credential
  edit <id>            Edit a credential
  delete <id>          Delete a credential
  help                 Show this help
  quit                 Leave the shell
`

var templateFuncs = template.FuncMap{
	"date": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format(time.RFC3339)
	},
	"yesno": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
	"dash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
	"describe": api.Describe,
}

var (
	credentialTmpl      = template.Must(template.New("credential").Funcs(templateFuncs).Parse(credentialTemplate))
	credentialsListTmpl = template.Must(template.New("list").Funcs(templateFuncs).Parse(credentialsListTemplate))
)

func (a *App) renderCredential(cred *models.Credential) error {
	if err := credentialTmpl.Execute(a.io, cred); err != nil {
		return fmt.Errorf("failed to render credential: %w", err)
	}
	return nil
}

func (a *App) renderList(snap views.ListSnapshot) error {
	if err := credentialsListTmpl.Execute(a.io, snap); err != nil {
		return fmt.Errorf("failed to render credentials: %w", err)
	}
	return nil
}

func (a *App) printShellHelp() {
	a.io.Println(strings.TrimSpace(shellHelpTemplate))
}
