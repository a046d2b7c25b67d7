package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/synpatico-dev/synpatico"
	"github.com/synpatico-dev/synpatico/negotiate"
)

// setupRouter wires negotiate.Agent behind gin, grounded on
// leanlp-BTC-coinjoin's SetupRouter: gin.Default() for the logging and
// recovery middleware, a public health endpoint, and — in place of
// that repo's fixed API surface — a catch-all route so the agent can
// mediate arbitrary upstream paths, which is the whole point of
// negotiate.Agent: it doesn't know the upstream's route table, it
// only knows how to RECV/FETCH/LEARN/ENCODE?/EMIT whatever arrives.
func setupRouter(engine *synpatico.Engine, agent *negotiate.Agent) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "operational",
			"learnedStructures": engine.Shapes().Len(),
			"requestOptimized":  engine.RequestOptimizationEnabled(),
		})
	})

	r.NoRoute(gin.WrapH(agent))

	return r
}
