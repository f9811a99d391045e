package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestClosure_FirstSeenOrder(t *testing.T) {
	closure := domain.NewClosure()

	a := domain.NewMavenDependency("org.a", "a", "1.0", false)
	b := domain.NewMavenDependency("org.b", "b", "1.0", true)
	c := domain.NewMavenDependency("org.c", "c", "2.0", false)

	assert.Equal(t, 2, closure.Add(a, b))
	assert.Equal(t, 1, closure.Add(b, c, a))
	assert.Equal(t, 3, closure.Len())

	assert.Equal(t, []string{"org.a:a:1.0", "org.b::b:1.0", "org.c:c:2.0"}, domain.Coordinates(closure.Dependencies()))
	assert.True(t, closure.Contains("org.b::b:1.0"))
	assert.False(t, closure.Contains("org.b:b:1.0"))
}

func TestClosure_DependenciesIsCopy(t *testing.T) {
	closure := domain.NewClosure()
	closure.Add(domain.NewLocalDependency("../core"))

	deps := closure.Dependencies()
	deps[0] = domain.NewLocalDependency("../other")

	assert.Equal(t, []string{"../core"}, domain.Coordinates(closure.Dependencies()))
}
