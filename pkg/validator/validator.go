package validator

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	valid "github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	zhtrans "github.com/go-playground/validator/v10/translations/zh"
)

// gin binding校验器的翻译支持，按配置语言懒加载一次

var (
	once  sync.Once
	trans ut.Translator
)

// LazyInitGinValidator 初始化gin的validator翻译器
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*valid.Validate)
		if !ok {
			return
		}

		enLoc := en.New()
		zhLoc := zh.New()
		uni := ut.New(enLoc, enLoc, zhLoc)

		switch strings.ToLower(language) {
		case "zh", "zh-cn":
			trans, _ = uni.GetTranslator("zh")
			_ = zhtrans.RegisterDefaultTranslations(v, trans)
		default:
			trans, _ = uni.GetTranslator("en")
			_ = entrans.RegisterDefaultTranslations(v, trans)
		}
	})
}

// Translate 将校验错误转换为已配置语言的提示信息
func Translate(err error) string {
	if err == nil {
		return ""
	}
	errs, ok := err.(valid.ValidationErrors)
	if !ok || trans == nil {
		return err.Error()
	}
	var parts []string
	for _, fe := range errs {
		parts = append(parts, fe.Translate(trans))
	}
	return strings.Join(parts, "; ")
}
