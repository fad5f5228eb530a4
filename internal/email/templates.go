package email

import (
	"bytes"
	"html/template"
)

type messageReceivedData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Body        string
}

var messageReceivedTmpl = template.Must(template.New("message_received").Parse(`
<h2>New message from your portfolio</h2>
<p><strong>From:</strong> {{.SenderName}} &lt;{{.SenderEmail}}&gt;</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<hr>
<p>{{.Body}}</p>
`))

func renderMessageReceived(data messageReceivedData) (string, error) {
	var buf bytes.Buffer
	if err := messageReceivedTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
