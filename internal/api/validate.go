package api

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pribylovaa/celebrations-service/internal/service"
)

// checker — валидатор проводных структур с английскими сообщениями
// и именами полей из json-тегов.
type checker struct {
	validate *validator.Validate
	trans    ut.Translator
}

var (
	checkerOnce sync.Once
	checkerInst *checker
)

func getChecker() *checker {
	checkerOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}

			return name
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		checkerInst = &checker{validate: v, trans: trans}
	})

	return checkerInst
}

// Validate проверяет структуру запроса по validate-тегам.
// Первое нарушение возвращается как service.ErrInvalidArgument с переведённым сообщением.
func Validate(v any) error {
	c := getChecker()

	err := c.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &service.DetailError{Kind: service.ErrInvalidArgument, Detail: verrs[0].Translate(c.trans)}
	}

	return &service.DetailError{Kind: service.ErrInvalidArgument, Detail: "malformed request"}
}
