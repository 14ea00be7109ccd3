package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/tabhub/tabhub/docs"
	v1 "github.com/tabhub/tabhub/internal/api/handler/v1"
	"github.com/tabhub/tabhub/internal/api/middleware"
	"github.com/tabhub/tabhub/internal/config"
	"github.com/tabhub/tabhub/internal/repository"
	"github.com/tabhub/tabhub/internal/repository/dao"
	"github.com/tabhub/tabhub/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	feed := s.initDrawFeedHandler(db)
	go feed.Run()

	drawHandler := s.initDrawHandler(db, feed)
	generationHandler := s.initGenerationHandler(db, feed)
	ballotHandler := s.initBallotHandler(db, feed)
	s.MountHandlers(drawHandler, generationHandler, ballotHandler, feed)

	return s
}

func (s *Server) initDrawFeedHandler(db *gorm.DB) *v1.DrawFeedHandler {
	drawDAO := dao.NewDrawDAO(db)
	repo := repository.NewDrawRepository(drawDAO)
	svc := service.NewDrawService(repo)
	handler := v1.NewDrawFeedHandler(svc)

	return handler
}

func (s *Server) initDrawHandler(db *gorm.DB, feed *v1.DrawFeedHandler) *v1.DrawHandler {
	drawDAO := dao.NewDrawDAO(db)
	repo := repository.NewDrawRepository(drawDAO)
	svc := service.NewDrawService(repo)
	handler := v1.NewDrawHandler(svc, feed)

	return handler
}

func (s *Server) initGenerationHandler(db *gorm.DB, feed *v1.DrawFeedHandler) *v1.GenerationHandler {
	ticketDAO := dao.NewTicketDAO(db)
	ticketRepo := repository.NewTicketRepository(ticketDAO)
	drawDAO := dao.NewDrawDAO(db)
	drawRepo := repository.NewDrawRepository(drawDAO)
	svc := service.NewGenerationService(ticketRepo, drawRepo, service.NewRandomPairing(), service.NewRoundRobinAllocation(), *s.Config.Format)
	tickets := service.NewTicketService(ticketRepo)
	handler := v1.NewGenerationHandler(svc, tickets, feed)

	return handler
}

func (s *Server) initBallotHandler(db *gorm.DB, feed *v1.DrawFeedHandler) *v1.BallotHandler {
	ballotDAO := dao.NewBallotDAO(db)
	ballotRepo := repository.NewBallotRepository(ballotDAO)
	resultDAO := dao.NewResultDAO(db)
	resultRepo := repository.NewResultRepository(resultDAO)
	policy := service.NewAggregationPolicy(s.Config.Format)
	reconciler := service.NewReconciler(ballotRepo, resultRepo, policy, service.DecisiveRoles(s.Config.Format))
	svc := service.NewBallotService(ballotRepo, reconciler)
	drawSvc := service.NewDrawService(repository.NewDrawRepository(dao.NewDrawDAO(db)))
	handler := v1.NewBallotHandler(svc, drawSvc, feed)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(drawHandler *v1.DrawHandler, generationHandler *v1.GenerationHandler, ballotHandler *v1.BallotHandler, feed *v1.DrawFeedHandler) {
	const basePath = "/api/v1"

	draws := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		draws.GET("/draws", drawHandler.HandleGetDraws)
		draws.POST("/draws/judges/move", drawHandler.HandleMoveJudge)
		draws.POST("/draws/rooms/move", drawHandler.HandleMoveRoom)
		draws.POST("/draws/teams/swap", drawHandler.HandleSwapTeams)
		draws.POST("/draws/teams/place", drawHandler.HandlePlaceTeam)

		draws.POST("/rounds/:roundID/draws/generate", generationHandler.HandleGenerateDraw)
		draws.POST("/rounds/:roundID/adjudication/generate", generationHandler.HandleGenerateAdjudication)
		draws.GET("/rounds/:roundID/tickets", generationHandler.HandleGetTickets)

		draws.POST("/debates/:debateID/ballots", ballotHandler.HandleSubmitBallot)
		draws.GET("/debates/:debateID/ballots", ballotHandler.HandleGetBallots)
		draws.PUT("/debates/:debateID/ballots/:judgeID", ballotHandler.HandleReviseBallot)
		draws.GET("/debates/:debateID/ballots/:judgeID/versions", ballotHandler.HandleGetBallotVersions)
		draws.GET("/debates/:debateID/result", ballotHandler.HandleGetResult)
	}

	// Browsers cannot set an Authorization header on a WebSocket upgrade,
	// so the live feed is mounted outside the JWT group.
	s.Router.GET(basePath+"/draws/ws", feed.HandleWebSocket)

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Tabhub Draw API"
	docs.SwaggerInfo.Description = "Draw allocation and result consistency engine for debate tournaments."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
