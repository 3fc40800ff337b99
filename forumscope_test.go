package forumscope_test

import (
	"errors"
	"testing"

	"github.com/forumscope/forumscope"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := forumscope.Errorf(forumscope.ENOTFOUND, "run %q not found", "test")

	assert.Equal(t, forumscope.ENOTFOUND, forumscope.ErrorCode(err))
	assert.Equal(t, "run \"test\" not found", forumscope.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, forumscope.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, forumscope.EINTERNAL, forumscope.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, forumscope.ErrorMessage(nil))
}

func TestRun_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete run", func(t *testing.T) {
		t.Parallel()

		run := &forumscope.Run{
			BaseURL:  "https://forum.example.com",
			Sections: []string{"general_discussion"},
		}
		assert.NoError(t, run.Validate())
	})

	t.Run("rejects a missing base URL", func(t *testing.T) {
		t.Parallel()

		run := &forumscope.Run{Sections: []string{"general_discussion"}}
		assert.Equal(t, forumscope.EINVALID, forumscope.ErrorCode(run.Validate()))
	})

	t.Run("rejects a malformed base URL", func(t *testing.T) {
		t.Parallel()

		run := &forumscope.Run{
			BaseURL:  "not a url",
			Sections: []string{"general_discussion"},
		}
		assert.Equal(t, forumscope.EINVALID, forumscope.ErrorCode(run.Validate()))
	})

	t.Run("rejects empty sections", func(t *testing.T) {
		t.Parallel()

		run := &forumscope.Run{BaseURL: "https://forum.example.com"}
		assert.Equal(t, forumscope.EINVALID, forumscope.ErrorCode(run.Validate()))
	})
}
