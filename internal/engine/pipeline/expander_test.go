package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

func TestExpander_Expand_MergesInFirstSeenOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mocks.NewMockDependencyResolver(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	cats := domain.NewMavenDependency("org.typelevel", "cats-core_3", "2.10.0", false)
	kernel := domain.NewMavenDependency("org.typelevel", "cats-kernel_3", "2.10.0", false)
	effect := domain.NewMavenDependency("org.typelevel", "cats-effect_3", "3.5.2", false)

	primary.EXPECT().ResolveTransitive(gomock.Any(), []domain.Dependency{cats}).
		Return([]domain.Dependency{cats, kernel}, nil)
	primary.EXPECT().ResolveTransitive(gomock.Any(), []domain.Dependency{effect}).
		Return([]domain.Dependency{effect, cats, kernel}, nil)

	closure, err := pipeline.NewExpander(logger).Expand(
		context.Background(),
		ports.ResolverSelection{Primary: primary},
		[]domain.Dependency{cats, effect},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"org.typelevel:cats-core_3:2.10.0",
		"org.typelevel:cats-kernel_3:2.10.0",
		"org.typelevel:cats-effect_3:3.5.2",
	}, domain.Coordinates(closure.Dependencies()))
}

func TestExpander_Expand_FallsBackWithWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mocks.NewMockDependencyResolver(ctrl)
	fallback := mocks.NewMockDependencyResolver(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	dep := domain.NewMavenDependency("com.lihaoyi", "os-lib_3", "0.9.1", false)

	primary.EXPECT().Name().Return("coursier")
	primary.EXPECT().ResolveTransitive(gomock.Any(), gomock.Any()).Return(nil, domain.ErrBackendUnavailable)
	fallback.EXPECT().ResolveTransitive(gomock.Any(), []domain.Dependency{dep}).Return([]domain.Dependency{dep}, nil)
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "coursier")
		assert.Contains(t, msg, dep.Coordinate())
	})

	closure, err := pipeline.NewExpander(logger).Expand(
		context.Background(),
		ports.ResolverSelection{Primary: primary, Fallback: fallback},
		[]domain.Dependency{dep},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, closure.Len())
}

func TestExpander_Expand_Exhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mocks.NewMockDependencyResolver(ctrl)
	fallback := mocks.NewMockDependencyResolver(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	dep := domain.NewMavenDependency("com.example", "missing", "1.0", false)

	primary.EXPECT().Name().Return("coursier")
	fallback.EXPECT().Name().Return("scala-cli")
	primary.EXPECT().ResolveTransitive(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
	fallback.EXPECT().ResolveTransitive(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
	logger.EXPECT().Warn(gomock.Any()).Times(2)

	_, err := pipeline.NewExpander(logger).Expand(
		context.Background(),
		ports.ResolverSelection{Primary: primary, Fallback: fallback},
		[]domain.Dependency{dep},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrResolution)
	assert.ErrorContains(t, err, domain.ErrBackendsExhausted.Error())
}

func TestExpander_Expand_LocalNeverReachesChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mocks.NewMockDependencyResolver(ctrl)
	local := mocks.NewMockDependencyResolver(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	ref := domain.NewLocalDependency("../core").WithBase("/work/app")
	local.EXPECT().ResolveTransitive(gomock.Any(), []domain.Dependency{ref}).Return([]domain.Dependency{ref}, nil)

	closure, err := pipeline.NewExpander(logger).Expand(
		context.Background(),
		ports.ResolverSelection{Primary: primary, Local: local},
		[]domain.Dependency{ref},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"../core"}, domain.Coordinates(closure.Dependencies()))
}

func TestExpander_Expand_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mocks.NewMockDependencyResolver(ctrl)
	fallback := mocks.NewMockDependencyResolver(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary.EXPECT().ResolveTransitive(gomock.Any(), gomock.Any()).Return(nil, context.Canceled)

	_, err := pipeline.NewExpander(logger).Expand(
		ctx,
		ports.ResolverSelection{Primary: primary, Fallback: fallback},
		[]domain.Dependency{domain.NewMavenDependency("g", "a", "1", false)},
	)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExpander_Validate(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mocks.NewMockDependencyResolver(ctrl)
	fallback := mocks.NewMockDependencyResolver(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	good := domain.NewMavenDependency("org.slf4j", "slf4j-api", "2.0.9", false)
	bad := domain.NewMavenDependency("org.slf4j", "slf4j-nope", "2.0.9", false)

	primary.EXPECT().Validate(gomock.Any(), good).Return(domain.ErrBackendUnavailable)
	fallback.EXPECT().Validate(gomock.Any(), good).Return(nil)
	primary.EXPECT().Validate(gomock.Any(), bad).Return(domain.ErrBackendUnavailable)
	fallback.EXPECT().Validate(gomock.Any(), bad).Return(domain.ErrDependencyUnavailable)

	errs := pipeline.NewExpander(logger).Validate(
		context.Background(),
		ports.ResolverSelection{Primary: primary, Fallback: fallback},
		[]domain.Dependency{good, bad},
	)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrResolution)
	assert.ErrorIs(t, errs[0], domain.ErrDependencyUnavailable)
}
