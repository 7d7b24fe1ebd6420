package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

func TestStatsCmd_Text(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mocks.kb.stats = domain.IndexStats{TotalVectorCount: 321, Dimension: 768}

	out, code := execute("stats")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Index:     customer-support-kb")
	assert.Contains(t, out, "Vectors:   321")
	assert.Contains(t, out, "Dimension: 768")
}

func TestStatsCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mocks.kb.stats = domain.IndexStats{TotalVectorCount: 5, Dimension: 768}

	out, code := execute("stats", "--json")

	assert.Equal(t, 0, code)
	assert.JSONEq(t, `{"total_vector_count":5,"dimension":768}`, out)
}

func TestStatsCmd_Error(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mocks.kb.err = errors.New("index stats: vector index unavailable")

	out, code := execute("stats")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "vector index unavailable")
}
