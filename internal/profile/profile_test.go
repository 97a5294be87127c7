package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
)

func TestNewStaticProvider(t *testing.T) {
	testCases := []struct {
		name  string
		user  string
		stage string
		want  model.Profile
	}{
		{
			name: "defaults",
			want: model.Profile{Name: DefaultName, PregnancyStage: DefaultPregnancyStage},
		},
		{
			name:  "configured",
			user:  "Maya",
			stage: "Third Trimester",
			want:  model.Profile{Name: "Maya", PregnancyStage: "Third Trimester"},
		},
		{
			name:  "blank values fall back",
			user:  "   ",
			stage: "First Trimester",
			want:  model.Profile{Name: DefaultName, PregnancyStage: "First Trimester"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewStaticProvider(tc.user, tc.stage)
			assert.Equal(t, tc.want, p.Profile(context.Background()))
		})
	}
}
