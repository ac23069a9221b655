// Package params binds path parameters the way oapi-codegen generated servers do.
package params

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ErrInvalidID is returned when a path id is not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// ID binds the path parameter name as a positive integer id.
func ID(c *gin.Context, name string) (uint, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidID, name, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidID, name)
	}
	return uint(id), nil
}
