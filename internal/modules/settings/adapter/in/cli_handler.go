package in

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	settingsdto "ritual/internal/modules/settings/dto"
	settingsin "ritual/internal/modules/settings/port/in"
	apperrors "ritual/internal/platform/errors"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (settingsdto.SettingsOutput, error) {
	return h.usecase.Get(ctx)
}

// Set applies key=bool pairs such as "reactiveAlerts=false".
func (h CLIHandler) Set(ctx context.Context, pairs []string) (settingsdto.SettingsOutput, error) {
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return settingsdto.SettingsOutput{}, fmt.Errorf("%w: expected key=bool, got %q", apperrors.ErrInvalidInput, pair)
		}
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return settingsdto.SettingsOutput{}, fmt.Errorf("%w: %s is not a boolean", apperrors.ErrInvalidInput, raw)
		}
		values[strings.TrimSpace(key)] = v
	}
	return h.usecase.Update(ctx, settingsdto.UpdateInput{Values: values})
}
