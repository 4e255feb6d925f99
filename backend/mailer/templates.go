package mailer

import (
	"bytes"
	"html/template"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Olá, {{.Name}}!</h2>
  <p>Seu acesso ao <strong>Planner OAB</strong> foi liberado.</p>
  {{if .Password}}
  <p>Use as credenciais abaixo para entrar:</p>
  <p>E-mail: <strong>{{.Email}}</strong><br>
     Senha temporária: <strong>{{.Password}}</strong></p>
  <p>Ao entrar, complete seu perfil e troque a senha.</p>
  {{else}}
  <p>Você já possui uma conta com o e-mail <strong>{{.Email}}</strong>.
     Entre com a sua senha de sempre.</p>
  {{end}}
  <p><a href="{{.LoginURL}}">Acessar o Planner</a></p>
  <p>Bons estudos!</p>
</body>
</html>`))

type WelcomeData struct {
	Name     string
	Email    string
	Password string // empty when the account already existed
	LoginURL string
}

const (
	WelcomeSubject         = "Seu acesso ao Planner OAB"
	ExistingAccountSubject = "Planner OAB: você já tem uma conta"
)

// Welcome renders the welcome email. Without a password it renders the
// "you already have an account" variant.
func Welcome(data WelcomeData) (Message, error) {
	if data.Name == "" {
		data.Name = "aluno(a)"
	}

	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, data); err != nil {
		return Message{}, err
	}

	subject := WelcomeSubject
	if data.Password == "" {
		subject = ExistingAccountSubject
	}
	return Message{
		To:      data.Email,
		ToName:  data.Name,
		Subject: subject,
		HTML:    buf.String(),
	}, nil
}
