package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	tests := []struct {
		uid      string
		filename string
		want     string
		wantErr  bool
	}{
		{"u1", "me.png", "profilePictures/u1/me.png", false},
		{"u1", "../../etc/passwd", "profilePictures/u1/passwd", false},
		{"u1", `C:\Users\me\avatar.jpg`, "profilePictures/u1/avatar.jpg", false},
		{"u1", "", "", true},
		{"", "me.png", "", true},
		{"u1", "dir/", "profilePictures/u1/dir", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := ObjectName(tt.uid, tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDownloadURL(t *testing.T) {
	got := DownloadURL("teamchat.appspot.com", "profilePictures/u1/me.png", "tok")
	assert.Equal(t, "https://firebasestorage.googleapis.com/v0/b/teamchat.appspot.com/o/profilePictures%2Fu1%2Fme.png?alt=media&token=tok", got)
}
