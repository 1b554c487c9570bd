package config

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

var durationType = reflect.TypeOf(time.Duration(0))

// loadFromEnv overrides every field tagged `env:"NAME"` whose variable is
// set, descending into nested sections. It returns the names it applied.
func loadFromEnv(config *Config, lookup lookupFunc) ([]string, error) {
	var applied []string
	err := walkEnvFields(reflect.ValueOf(config).Elem(), func(field reflect.Value, name, key string) error {
		raw, ok := lookup(key)
		if !ok {
			return nil
		}
		if err := setFromString(field, raw); err != nil {
			return fmt.Errorf("failed to set field %s from env var %s: %w", name, key, err)
		}
		applied = append(applied, key)
		return nil
	})
	return applied, err
}

func walkEnvFields(v reflect.Value, visit func(field reflect.Value, name, key string) error) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field, meta := v.Field(i), t.Field(i)
		if !meta.IsExported() {
			continue
		}
		if field.Kind() == reflect.Struct && field.Type() != durationType {
			if err := walkEnvFields(field, visit); err != nil {
				return err
			}
			continue
		}
		if key := meta.Tag.Get("env"); key != "" {
			if err := visit(field, meta.Name, key); err != nil {
				return err
			}
		}
	}
	return nil
}

func setFromString(field reflect.Value, raw string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer format: %w", err)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean format: %w", err)
		}
		field.SetBool(b)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float format: %w", err)
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}
