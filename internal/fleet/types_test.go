package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListFilterMatches(t *testing.T) {
	inst := Instance{
		ID:           "i-abc123",
		InstanceType: "t2.micro",
		Environment:  "production",
	}

	tests := []struct {
		name   string
		filter ListFilter
		want   bool
	}{
		{"empty filter matches", ListFilter{}, true},
		{"environment match", ListFilter{Environment: "production"}, true},
		{"environment mismatch", ListFilter{Environment: "staging"}, false},
		{"type match", ListFilter{InstanceType: "t2.micro"}, true},
		{"type mismatch", ListFilter{InstanceType: "m5.large"}, false},
		{"both match", ListFilter{Environment: "production", InstanceType: "t2.micro"}, true},
		{"one of two mismatches", ListFilter{Environment: "production", InstanceType: "m5.large"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(inst))
		})
	}
}

func TestListFilterMatches_ExactNotSubstring(t *testing.T) {
	inst := Instance{Environment: "production"}
	assert.False(t, ListFilter{Environment: "prod"}.Matches(inst))
}
