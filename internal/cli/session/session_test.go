package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoadClear(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	st := Store{}

	_, err := st.Load()
	require.Error(t, err, "до сохранения сессии нет")

	s := Session{UserID: "7a3b7a2e-3a65-4a6e-b9a3-25a6dbd41111", Username: "alice"}
	require.NoError(t, st.Save(s))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	require.NoError(t, st.Clear())
	_, err = st.Load()
	assert.Error(t, err)

	// повторная очистка безвредна
	require.NoError(t, st.Clear())
}

func TestStore_SaveRejectsEmptySession(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	err := Store{}.Save(Session{Username: "alice"})
	assert.Error(t, err)
}
