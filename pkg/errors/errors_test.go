package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	errDevice := fmt.Errorf("%w: 设备不存在", ErrNotFound)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"包装的 NotFound", errDevice, ErrNotFound},
		{"二次包装", fmt.Errorf("绑定标签: %w", errDevice), ErrNotFound},
		{"Conflict", fmt.Errorf("%w: 序列号重复", ErrConflict), ErrConflict},
		{"未分类", errors.New("boom"), nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}
