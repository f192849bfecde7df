package miter

import (
	"strings"
	"text/template"
)

// The template emits whole lines; actions sit at line starts so no
// whitespace trimming is needed.
var wrapperTpl = template.Must(template.New("miter").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`// Generated by mitergen. DO NOT EDIT.
{{if .Fingerprint}}// Port model sha256:{{.Fingerprint}}
{{end}}module {{.Top}}(
{{range .Ports}}    {{.Decl}}{{.Sep}}
{{end}});

{{range .Outputs}}    wire {{.}}_{{$.Gate}};
    wire {{.}}_{{$.Golden}};
{{if not $.Visible}}    wire {{.}};
{{end}}{{end}}    wire {{.Equivalent}};

{{range .Instances}}    {{.Module}} {{.Name}} (
{{range .Conns}}        .{{.Port}}({{.Net}}){{.Sep}}
{{end}}    );

{{end}}{{range .Outputs}}    assign {{.}} = ({{.}}_{{$.Gate}} === {{.}}_{{$.Golden}});
{{end}}
    assign {{.Equivalent}} = &{ {{join .Outputs ", "}} };
    assign {{.Trigger}} = ~{{.Equivalent}};

endmodule
`))

type portLine struct {
	Decl string
	Sep  string
}

type conn struct {
	Port string
	Net  string
	Sep  string
}

type instance struct {
	Module string
	Name   string
	Conns  []conn
}

type wrapperData struct {
	Fingerprint string
	Top         string
	Gate        string
	Golden      string
	Visible     bool
	Ports       []portLine
	Outputs     []string
	Instances   []instance
	Equivalent  string
	Trigger     string
}

// separators returns "," for every entry but the last.
func separators(n int) []string {
	seps := make([]string, n)
	for i := 0; i < n-1; i++ {
		seps[i] = ","
	}
	return seps
}
