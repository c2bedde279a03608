// Package i18n resolves user-facing message keys into localized text.
// Uzbek is the default application language; unknown keys fall back to
// English, then to the key itself so a missing entry never hides an error.
package i18n

import (
	"fmt"
	"strings"
)

type Lang string

const (
	LangUZ Lang = "uz"
	LangEN Lang = "en"
	LangRU Lang = "ru"

	Default = LangUZ
)

// Parse maps an Accept-Language header value to a supported language.
func Parse(header string) Lang {
	v := strings.ToLower(strings.TrimSpace(header))
	if i := strings.IndexAny(v, ",;-_"); i > 0 {
		v = v[:i]
	}
	switch Lang(v) {
	case LangEN:
		return LangEN
	case LangRU:
		return LangRU
	case LangUZ:
		return LangUZ
	default:
		return Default
	}
}

type Service struct{}

func NewService() *Service { return &Service{} }

// Message returns the localized text for key, applying printf args if any.
func (s *Service) Message(key string, lang Lang, args ...any) string {
	bundle, ok := bundles[lang]
	if !ok {
		bundle = bundles[LangEN]
	}
	msg, ok := bundle[key]
	if !ok {
		if msg, ok = bundles[LangEN][key]; !ok {
			return key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

var bundles = map[Lang]map[string]string{
	LangEN: {
		"email.phone.exists":           "email or phone already exists",
		"email.phone.invalid":          "email or phone is invalid",
		"email.confirm.sent":           "confirmation email was sent, please check your inbox",
		"token.invalid.expired":        "token is invalid or expired",
		"verification.failed":          "verification failed",
		"profile.not.found":            "profile not found",
		"wrong.password.username":      "wrong username or password",
		"password.too.short":           "password must be at least %d characters",
		"wrong.status":                 "operation not allowed in current status",
		"reset.password.username.sent": "password reset code was sent, please check your inbox",
		"reset.password.success":       "password was reset successfully",
		"password.not.match":           "current password does not match",
		"password.update.success":      "password was updated successfully",
		"profile.name.updated":         "profile name was updated",
		"confirm.code.sent":            "confirmation code was sent to %s",
		"confirm.code.invalid":         "confirmation code is invalid",
		"confirm.code.expired":         "confirmation code has expired",
		"confirm.code.limit":           "too many confirmation codes requested, try again later",
		"username.update.success":      "username was updated successfully",
		"profile.photo.updated":        "profile photo was updated",
		"profile.update.success":       "profile was updated successfully",
		"profile.delete.success":       "profile was deleted successfully",
		"post.not.found":               "post not found",
		"no.post.update":               "you are not allowed to update this post",
		"no.post.delete":               "you are not allowed to delete this post",
		"post.delete.success":          "post was deleted successfully",
		"video.not.found":              "video not found",
		"no.video.update":              "you are not allowed to update this video",
		"no.video.delete":              "you are not allowed to delete this video",
		"comment.not.found":            "comment not found",
		"attach.not.found":             "file not found",
		"internal.error":               "something went wrong, please try again later",
	},
	LangUZ: {
		"email.phone.exists":           "email yoki telefon allaqachon mavjud",
		"email.phone.invalid":          "email yoki telefon noto'g'ri",
		"email.confirm.sent":           "tasdiqlash xati yuborildi, pochtangizni tekshiring",
		"token.invalid.expired":        "token yaroqsiz yoki muddati o'tgan",
		"verification.failed":          "tasdiqlash amalga oshmadi",
		"profile.not.found":            "profil topilmadi",
		"wrong.password.username":      "login yoki parol noto'g'ri",
		"password.too.short":           "parol kamida %d belgidan iborat bo'lishi kerak",
		"wrong.status":                 "joriy holatda bu amalga ruxsat yo'q",
		"reset.password.username.sent": "parolni tiklash kodi yuborildi, pochtangizni tekshiring",
		"reset.password.success":       "parol muvaffaqiyatli tiklandi",
		"password.not.match":           "joriy parol mos kelmadi",
		"password.update.success":      "parol muvaffaqiyatli yangilandi",
		"profile.name.updated":         "profil nomi yangilandi",
		"confirm.code.sent":            "tasdiqlash kodi %s manziliga yuborildi",
		"confirm.code.invalid":         "tasdiqlash kodi noto'g'ri",
		"confirm.code.expired":         "tasdiqlash kodi muddati o'tgan",
		"confirm.code.limit":           "juda ko'p kod so'raldi, keyinroq urinib ko'ring",
		"username.update.success":      "login muvaffaqiyatli yangilandi",
		"profile.photo.updated":        "profil rasmi yangilandi",
		"profile.update.success":       "profil muvaffaqiyatli yangilandi",
		"profile.delete.success":       "profil muvaffaqiyatli o'chirildi",
		"post.not.found":               "post topilmadi",
		"no.post.update":               "bu postni o'zgartirishga ruxsatingiz yo'q",
		"no.post.delete":               "bu postni o'chirishga ruxsatingiz yo'q",
		"post.delete.success":          "post muvaffaqiyatli o'chirildi",
		"video.not.found":              "video topilmadi",
		"no.video.update":              "bu videoni o'zgartirishga ruxsatingiz yo'q",
		"no.video.delete":              "bu videoni o'chirishga ruxsatingiz yo'q",
		"comment.not.found":            "izoh topilmadi",
		"attach.not.found":             "fayl topilmadi",
		"internal.error":               "xatolik yuz berdi, keyinroq urinib ko'ring",
	},
	LangRU: {
		"email.phone.exists":           "email или телефон уже существует",
		"email.phone.invalid":          "email или телефон указан неверно",
		"email.confirm.sent":           "письмо с подтверждением отправлено, проверьте почту",
		"token.invalid.expired":        "токен недействителен или истёк",
		"verification.failed":          "подтверждение не удалось",
		"profile.not.found":            "профиль не найден",
		"wrong.password.username":      "неверный логин или пароль",
		"password.too.short":           "пароль должен содержать не менее %d символов",
		"wrong.status":                 "операция недоступна в текущем статусе",
		"reset.password.username.sent": "код для сброса пароля отправлен, проверьте почту",
		"reset.password.success":       "пароль успешно сброшен",
		"password.not.match":           "текущий пароль не совпадает",
		"password.update.success":      "пароль успешно обновлён",
		"profile.name.updated":         "имя профиля обновлено",
		"confirm.code.sent":            "код подтверждения отправлен на %s",
		"confirm.code.invalid":         "неверный код подтверждения",
		"confirm.code.expired":         "код подтверждения истёк",
		"confirm.code.limit":           "слишком много запросов кода, попробуйте позже",
		"username.update.success":      "логин успешно обновлён",
		"profile.photo.updated":        "фото профиля обновлено",
		"profile.update.success":       "профиль успешно обновлён",
		"profile.delete.success":       "профиль успешно удалён",
		"post.not.found":               "пост не найден",
		"no.post.update":               "вы не можете изменить этот пост",
		"no.post.delete":               "вы не можете удалить этот пост",
		"post.delete.success":          "пост успешно удалён",
		"video.not.found":              "видео не найдено",
		"no.video.update":              "вы не можете изменить это видео",
		"no.video.delete":              "вы не можете удалить это видео",
		"comment.not.found":            "комментарий не найден",
		"attach.not.found":             "файл не найден",
		"internal.error":               "что-то пошло не так, попробуйте позже",
	},
}
