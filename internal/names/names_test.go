package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/relcheck/internal/names"
)

func TestSnake(t *testing.T) {
	tests := map[string]string{
		"User":      "user",
		"UserInfo":  "user_info",
		"HTTPCode":  "http_code",
		"UserID":    "user_id",
		"user_info": "user_info",
		"Device4G":  "device4g",
	}
	for in, out := range tests {
		assert.Equal(t, out, names.Snake(in), in)
	}
}

func TestPascal(t *testing.T) {
	tests := map[string]string{
		"user":      "User",
		"user_info": "UserInfo",
		"http_code": "HTTPCode",
		"id":        "ID",
		"group-id":  "GroupID",
	}
	for in, out := range tests {
		assert.Equal(t, out, names.Pascal(in), in)
	}
}

func TestTableName(t *testing.T) {
	tests := map[string]string{
		"User":      "users",
		"UserGroup": "user_groups",
		"Category":  "categories",
		"Person":    "people",
	}
	for in, out := range tests {
		assert.Equal(t, out, names.TableName(in), in)
	}
}
