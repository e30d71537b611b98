package domain

import (
	"regexp"
)

var (
	// Логин — email-подобный: локальная часть, @, домен минимум из двух меток
	emailRe = regexp.MustCompile(`^[^@]+@\w+(\.\w+)+\w$`)
	// Пароль: мин 6 символов, хотя бы одна буква и одна цифра
	letterRe = regexp.MustCompile(`[A-Za-z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
)

func ValidUsername(s string) bool {
	return emailRe.MatchString(s)
}

func ValidPassword(s string) bool {
	if len(s) < 6 {
		return false
	}
	return letterRe.MatchString(s) && digitRe.MatchString(s)
}
