package handlers

import (
	"net/http"
	"testing"
	"time"

	"jacha_aru_api_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceAuditHistory(t *testing.T) {
	s := newTestServer(t)
	token, usuarioID := s.register(t, "ana@example.com")

	id := s.create(t, token, "/categorias", map[string]string{"categoria": "Salud"})
	rec := s.do(t, http.MethodPut, "/categorias/"+itoa(id), token, map[string]string{"categoria": "Salud publica"})
	require.Equal(t, http.StatusOK, rec.Code)

	var logs []auditEntry
	require.Eventually(t, func() bool {
		rec := s.do(t, http.MethodGet, "/audit/categoria/"+itoa(id), token, nil)
		if rec.Code != http.StatusOK {
			return false
		}
		logs = nil
		decode(t, rec, &logs)
		return len(logs) == 2
	}, 2*time.Second, 20*time.Millisecond)

	actions := []models.AuditAction{logs[0].Action, logs[1].Action}
	assert.ElementsMatch(t, []models.AuditAction{models.AuditActionCreate, models.AuditActionUpdate}, actions)
	for _, entry := range logs {
		if entry.Action == models.AuditActionUpdate {
			fields := make([]string, 0, len(entry.Changes))
			for _, change := range entry.Changes {
				fields = append(fields, change.Field)
			}
			assert.Contains(t, fields, "categoria")
		}
		require.NotNil(t, entry.UsuarioID)
		assert.Equal(t, usuarioID, *entry.UsuarioID)
		assert.Equal(t, "ana@example.com", entry.UsuarioMail)
	}

	rec = s.do(t, http.MethodGet, "/audit/categoria/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
