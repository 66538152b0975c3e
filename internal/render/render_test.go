package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_BuiltIns(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	assert.Equal(t, []string{"component", "container", "hook", "presenter", "test"}, r.IDs())

	tests := []struct {
		id   string
		data map[string]any
		want []string
	}{
		{
			id:   "component",
			data: map[string]any{"name": "Avatar", "base": "Atom", "suffix": "atom"},
			want: []string{"import { Atom } from 'structurex';", "export class Avatar extends Atom<AvatarProps>"},
		},
		{
			id:   "container",
			data: map[string]any{"name": "Card", "suffix": "mol"},
			want: []string{"import { Card } from './Card.mol';", "class CardContainer extends ContainerComponent<CardState>"},
		},
		{
			id:   "test",
			data: map[string]any{"name": "Avatar", "folder": "atoms", "suffix": "atom", "import": "../../../app/atoms/Avatar/Avatar.atom"},
			want: []string{"from '../../../app/atoms/Avatar/Avatar.atom';", "describe('Avatar'"},
		},
		{
			id:   "hook",
			data: map[string]any{"name": "Auth"},
			want: []string{"export const useAuth = ()"},
		},
		{
			id:   "presenter",
			data: map[string]any{"name": "User"},
			want: []string{"class UserPresenter extends Presenter<UserDto, UserViewModel>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			out, err := r.Render(tt.id, tt.data)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(out), w)
			}
		})
	}
}

func TestTemplateRenderer_MissingKey(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	_, err = r.Render("component", map[string]any{"name": "Avatar"})
	assert.Error(t, err)
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	_, err = r.Render("story", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestTemplateRenderer_Overrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "component.tmpl"), []byte("// {{.base}} {{.name}}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "story.tmpl"), []byte("story {{.name}}\n"), 0644))

	r, err := New(dir)
	require.NoError(t, err)

	out, err := r.Render("component", map[string]any{"name": "Avatar", "base": "Atom"})
	require.NoError(t, err)
	assert.Equal(t, "// Atom Avatar\n", string(out))

	out, err = r.Render("story", map[string]any{"name": "Avatar"})
	require.NoError(t, err)
	assert.Equal(t, "story Avatar\n", string(out))

	// untouched built-ins remain available
	_, err = r.Render("hook", map[string]any{"name": "Auth"})
	assert.NoError(t, err)
}

func TestTemplateRenderer_EmptyOverrideDir(t *testing.T) {
	_, err := New(t.TempDir())
	assert.NoError(t, err)
}

func TestTemplateRenderer_BadOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "component.tmpl"), []byte("{{.name"), 0644))

	_, err := New(dir)
	assert.Error(t, err)
}
