// Package email builds and delivers the transactional messages the account
// lifecycle needs: the registration verification link and the confirmation
// codes for password resets and username changes.
package email

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
)

type Sender struct {
	client *BrevoClient
	logger *zap.SugaredLogger
}

func NewSender(client *BrevoClient, logger *zap.SugaredLogger) *Sender {
	return &Sender{client: client, logger: logger}
}

type mailText struct {
	subject string
	body    string
}

var registrationMail = map[i18n.Lang]mailText{
	i18n.LangEN: {
		subject: "Confirm your registration",
		body:    `<p>Welcome! Click the link below to activate your account:</p><p><a href="%s">Confirm registration</a></p><p>The link expires soon, so do not wait too long.</p>`,
	},
	i18n.LangUZ: {
		subject: "Ro'yxatdan o'tishni tasdiqlang",
		body:    `<p>Xush kelibsiz! Hisobingizni faollashtirish uchun quyidagi havolani bosing:</p><p><a href="%s">Ro'yxatdan o'tishni tasdiqlash</a></p><p>Havola muddati tez tugaydi, kechiktirmang.</p>`,
	},
	i18n.LangRU: {
		subject: "Подтвердите регистрацию",
		body:    `<p>Добро пожаловать! Нажмите на ссылку ниже, чтобы активировать аккаунт:</p><p><a href="%s">Подтвердить регистрацию</a></p><p>Срок действия ссылки скоро истечёт.</p>`,
	},
}

var resetCodeMail = map[i18n.Lang]mailText{
	i18n.LangEN: {
		subject: "Password reset code",
		body:    `<p>Your password reset code is:</p><h2>%s</h2><p>If you did not request a reset, ignore this message.</p>`,
	},
	i18n.LangUZ: {
		subject: "Parolni tiklash kodi",
		body:    `<p>Parolni tiklash kodingiz:</p><h2>%s</h2><p>Agar siz so'rov yubormagan bo'lsangiz, bu xabarni e'tiborsiz qoldiring.</p>`,
	},
	i18n.LangRU: {
		subject: "Код для сброса пароля",
		body:    `<p>Ваш код для сброса пароля:</p><h2>%s</h2><p>Если вы не запрашивали сброс, проигнорируйте это письмо.</p>`,
	},
}

var usernameChangeMail = map[i18n.Lang]mailText{
	i18n.LangEN: {
		subject: "Confirm your new login",
		body:    `<p>Your confirmation code for changing the login is:</p><h2>%s</h2>`,
	},
	i18n.LangUZ: {
		subject: "Yangi loginni tasdiqlang",
		body:    `<p>Loginni o'zgartirish uchun tasdiqlash kodingiz:</p><h2>%s</h2>`,
	},
	i18n.LangRU: {
		subject: "Подтвердите новый логин",
		body:    `<p>Ваш код подтверждения для смены логина:</p><h2>%s</h2>`,
	},
}

func pick(m map[i18n.Lang]mailText, lang i18n.Lang) mailText {
	if t, ok := m[lang]; ok {
		return t
	}
	return m[i18n.LangEN]
}

// SendRegistrationLink emails the activation link that carries the short-lived
// verification token.
func (s *Sender) SendRegistrationLink(ctx context.Context, to, link string, lang i18n.Lang) error {
	t := pick(registrationMail, lang)
	return s.send(ctx, to, t.subject, fmt.Sprintf(t.body, link))
}

func (s *Sender) SendPasswordResetCode(ctx context.Context, to, code string, lang i18n.Lang) error {
	t := pick(resetCodeMail, lang)
	return s.send(ctx, to, t.subject, fmt.Sprintf(t.body, code))
}

func (s *Sender) SendUsernameChangeCode(ctx context.Context, to, code string, lang i18n.Lang) error {
	t := pick(usernameChangeMail, lang)
	return s.send(ctx, to, t.subject, fmt.Sprintf(t.body, code))
}

func (s *Sender) send(ctx context.Context, to, subject, html string) error {
	if !s.client.IsConfigured() {
		s.logger.Warnw("email client not configured, message skipped", "to", to, "subject", subject)
		return nil
	}
	if err := s.client.Send(ctx, to, subject, html); err != nil {
		s.logger.Errorw("failed to send email", "to", to, "error", err)
		return err
	}
	return nil
}
