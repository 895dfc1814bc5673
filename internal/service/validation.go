package service

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/rasoi-next/internal/constants"

	"github.com/go-playground/validator/v10"
)

// ValidationError 字段级校验错误，field -> message
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, e.Fields[key])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Is 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
			return isSupportedPaymentMethod(fl.Field().String())
		})
		_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
			return isKnownOrderStatus(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// validateStruct 执行结构体校验并转换为 ValidationError
func validateStruct(input interface{}) error {
	err := getValidator().Struct(input)
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return formatValidationError(validationErrs)
}

func formatValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", field)
		case "min":
			fields[field] = fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
		case "max":
			fields[field] = fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
		case "gt":
			fields[field] = fmt.Sprintf("%s must be greater than %s", field, fieldErr.Param())
		case "gte":
			fields[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, fieldErr.Param())
		case "email":
			fields[field] = fmt.Sprintf("%s must be a valid email", field)
		case "payment_method":
			fields[field] = fmt.Sprintf("%s is not a supported payment method", field)
		case "oneof":
			fields[field] = fmt.Sprintf("%s must be one of [%s]", field, fieldErr.Param())
		default:
			fields[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return &ValidationError{Fields: fields}
}

func isSupportedPaymentMethod(method string) bool {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case constants.PaymentMethodCashOnDelivery,
		constants.PaymentMethodCard,
		constants.PaymentMethodUPI,
		constants.PaymentMethodWallet:
		return true
	}
	return false
}

// SupportedPaymentMethods 可选支付方式，仅记录不对接网关
func SupportedPaymentMethods() []string {
	return []string{
		constants.PaymentMethodCashOnDelivery,
		constants.PaymentMethodCard,
		constants.PaymentMethodUPI,
		constants.PaymentMethodWallet,
	}
}
