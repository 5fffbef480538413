package http

import (
	"html/template"
	"net/http"

	"github.com/openummah/masjidhub/pkg/httpx"
	"github.com/openummah/masjidhub/pkg/slogx"
)

// PageHandler renders the minimal server-side shell: the login form and the
// admin landing page behind the gate. The real admin experience is the JSON
// API; these pages exist so a browser session has somewhere to land.
type PageHandler struct {
	login *template.Template
	admin *template.Template
}

func NewPageHandler() *PageHandler {
	return &PageHandler{
		login: template.Must(template.New("login").Parse(loginPage)),
		admin: template.Must(template.New("admin").Parse(adminPage)),
	}
}

func (h *PageHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.login.Execute(w, nil); err != nil {
		slogx.FromContext(r.Context()).Error("render login page", "err", err)
	}
}

func (h *PageHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	identity, _ := httpx.IdentityFromContext(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.admin.Execute(w, identity); err != nil {
		slogx.FromContext(r.Context()).Error("render admin page", "err", err)
	}
}

const loginPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Sign in - MasjidHub</title>
</head>
<body>
<h1>Sign in</h1>
<form method="post" action="/api/auth/login" id="login-form">
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Sign in</button>
</form>
<script>
document.getElementById('login-form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const form = e.target;
  const res = await fetch(form.action, {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({email: form.email.value, password: form.password.value}),
  });
  if (res.ok) { window.location = '/admin'; }
});
</script>
</body>
</html>`

const adminPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Admin - MasjidHub</title>
</head>
<body>
<h1>Mosque administration</h1>
<p>Signed in as {{.Email}} ({{.Role}})</p>
{{if .MasjidID}}<p>Managing mosque {{.MasjidID}}</p>{{end}}
</body>
</html>`
