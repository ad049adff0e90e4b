package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Built-in template names.
const (
	TemplateVerifyEmail   = "verify_email"
	TemplateResetPassword = "reset_password"
)

const verifyEmailTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Email Verification</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
    <div style="background-color: #fff; padding: 30px; border-radius: 8px; text-align: center; max-width: 500px; margin: 40px auto;">
        <h1 style="color: #333;">Email Verification</h1>
        <p style="color: #666;">Hi {{.FullName}},</p>
        <p style="color: #666;">Thank you for signing up. Use the code below to verify your email address:</p>
        <p style="color: #333; font-size: 24px;"><strong>{{.Code}}</strong></p>
        <p style="color: #666;">The code expires in 10 minutes. If you did not create an account, please ignore this email.</p>
    </div>
</body>
</html>`

const resetPasswordTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Password Reset</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
    <div style="background-color: #fff; padding: 30px; border-radius: 8px; text-align: center; max-width: 500px; margin: 40px auto;">
        <h1 style="color: #333;">Password Reset Request</h1>
        <p style="color: #666;">Hi {{.FullName}},</p>
        <p style="color: #666;">You requested to reset your password. Use the OTP below to set a new password:</p>
        <p style="color: #333; font-size: 24px;"><strong>{{.Code}}</strong></p>
        <p style="color: #666;">If you did not request this, please ignore this email.</p>
    </div>
</body>
</html>`

// TemplateManager implements TemplateRenderer. The built-in OTP templates are
// registered on construction; LoadTemplates can override them from disk.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	// Built-ins never fail to parse.
	_ = tm.AddTemplate(TemplateVerifyEmail, verifyEmailTemplate)
	_ = tm.AddTemplate(TemplateResetPassword, resetPasswordTemplate)
	return tm
}

// Render executes the named template with data.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate parses and registers a template.
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// LoadTemplates registers every .html file under dirPath, keyed by base name.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}

		return nil
	})
}

// TemplateNames lists the registered template names.
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}

	return names
}
