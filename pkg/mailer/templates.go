package mailer

import (
	"bytes"
	"html/template"
	"strings"
)

const layout = `<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
<h1 style="color: #4F46E5;">{{.Heading}}</h1>
<p>Hi {{.Name}},</p>
{{block "body" .}}{{end}}
<br>
<p>Best regards,</p>
<p>The Staffly Team</p>
</div>`

var templates = map[string]string{
	"welcome": `<p>Your account has been created successfully. You can now log in to the Staffly HR portal.</p>
<p><strong>Username:</strong> {{.Email}}</p>
<p><strong>Role:</strong> {{.Role}}</p>
<p>Please contact your administrator if you have any issues accessing your account.</p>`,

	"leave_status": `<p>Your request for <strong>{{.LeaveType}} leave</strong> from {{.From}} to {{.To}} has been <strong>{{upper .Status}}</strong>.</p>
<p>You can check the details in your dashboard.</p>`,

	"new_leave": `<p><strong>{{.Employee}}</strong> has requested <strong>{{.LeaveType}} leave</strong> from {{.From}} to {{.To}}.</p>
<p><strong>Reason:</strong> {{.Reason}}</p>
<p>Please review the request in the dashboard.</p>`,

	"payroll": `<p>Your payroll for the month of <strong>{{.Month}}</strong> has been {{.Action}}.</p>
<p><strong>Net Pay:</strong> {{.NetPay}}</p>
<p><strong>Status:</strong> {{upper .Status}}</p>
<p>You can view the detailed payslip in your dashboard.</p>`,
}

var parsed = func() map[string]*template.Template {
	funcs := template.FuncMap{"upper": strings.ToUpper}
	out := make(map[string]*template.Template, len(templates))
	for name, body := range templates {
		t := template.Must(template.New("layout").Funcs(funcs).Parse(layout))
		template.Must(t.New("body").Parse(body))
		out[name] = t
	}
	return out
}()

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := parsed[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
