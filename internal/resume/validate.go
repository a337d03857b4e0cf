package resume

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const minPhoneDigits = 10

var looseURLPattern = regexp.MustCompile(`(?i)^(https?://)?([a-z0-9-]+\.)+[a-z]{2,}(/\S*)?$`)

var (
	validatorOnce       sync.Once
	submissionValidator *validator.Validate
)

// ValidatePhone accepts an empty value or one carrying at least ten digits;
// separators and other characters are ignored in the count.
func ValidatePhone(phone string) bool {
	if phone == "" {
		return true
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

// ValidateURL 接受空值，或形如 [http(s)://]label.label.tld[/path] 的链接。
func ValidateURL(url string) bool {
	if url == "" {
		return true
	}
	return looseURLPattern.MatchString(url)
}

// CountWords counts whitespace-delimited tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

func structValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		mustRegister(v, "phone_digits", func(fl validator.FieldLevel) bool {
			return ValidatePhone(fl.Field().String())
		})
		mustRegister(v, "loose_url", func(fl validator.FieldLevel) bool {
			return ValidateURL(fl.Field().String())
		})
		mustRegister(v, "min_words", func(fl validator.FieldLevel) bool {
			minWords, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			text := fl.Field().String()
			return text == "" || CountWords(text) >= minWords
		})
		submissionValidator = v
	})
	return submissionValidator
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Validate 校验表单并返回面向用户的错误列表（按字段顺序）。
// 返回空切片表示校验通过。
func Validate(s Submission) []string {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{"Submitted data could not be validated."}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, messageFor(fe))
	}
	return messages
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "phone_digits":
		return fmt.Sprintf("Phone number must contain at least %d digits.", minPhoneDigits)
	case "loose_url":
		return "LinkedIn / Portfolio link must be a valid URL (e.g. https://www.linkedin.com/in/you)."
	case "min_words":
		text, _ := fe.Value().(string)
		return fmt.Sprintf("Professional summary must be at least %s words (currently %d).", fe.Param(), CountWords(text))
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
