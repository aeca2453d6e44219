package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/application"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/cache"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/config"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/infrastructure/repository"
	handlers "github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/interfaces/http"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/logger"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/scheduler"
	services "github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error cargando configuración")
	}

	logger.Init(cfg.Server.LogLevel)

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		log.Fatal().Err(err).Msg("error conectando a la base de datos")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("error verificando la base de datos")
	}

	redisClient, err := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("error conectando a redis")
	}
	redisCache := cache.NewRedisCache(redisClient)

	// Repositorios
	reservaRepo := repository.NewReservaRepository(db)
	habitacionRepo := repository.NewHabitacionRepository(db)
	personRepo := repository.NewPersonRepository(db)
	consultaRepo := repository.NewConsultaRepository(db)
	operadorRepo := repository.NewOperadorRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)

	// Servicios
	reservaService := application.NewReservaService(reservaRepo, habitacionRepo, personRepo, redisCache)
	habitacionService := application.NewHabitacionService(habitacionRepo, reservaRepo, redisCache, cfg.Redis.TTL)
	personService := application.NewPersonService(personRepo)
	consultaService := application.NewConsultaService(consultaRepo, personRepo)
	operadorService := application.NewOperadorService(operadorRepo, cfg.JWT.Secret, cfg.JWT.ExpireMinutes)
	galleryService := application.NewGalleryService(galleryRepo)

	// S3 es opcional: sin bucket configurado, la galería solo acepta URLs
	var s3Service *services.S3Service
	if cfg.S3.Bucket != "" {
		s3Service, err = services.NewS3Service(context.Background(), cfg.S3.Region, cfg.S3.Bucket)
		if err != nil {
			log.Warn().Err(err).Msg("S3 no disponible, la subida de imágenes queda deshabilitada")
			s3Service = nil
		}
	}

	// Handlers
	reservaHandler := handlers.NewReservaHandler(reservaService)
	habitacionHandler := handlers.NewHabitacionHandler(habitacionService)
	personHandler := handlers.NewPersonHandler(personService)
	consultaHandler := handlers.NewConsultaHandler(consultaService)
	operadorHandler := handlers.NewOperadorHandler(operadorService)
	galleryHandler := handlers.NewGalleryHandler(galleryService, s3Service)

	limiter := application.NewRateLimiter(
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		cfg.RateLimit.MaxRequests,
	)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORS.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))

	api := app.Group("/api")

	auth := handlers.RequireAuth(cfg.JWT.Secret)
	soloAdmin := handlers.RequireRol(domain.RolAdmin)
	rateLimited := handlers.RateLimit(limiter)

	// Rutas públicas del sitio
	api.Post("/login", operadorHandler.Login)

	habitaciones := api.Group("/habitaciones")
	habitaciones.Get("/", habitacionHandler.GetRooms)
	habitaciones.Get("/tipos", habitacionHandler.GetRoomTypes)
	habitaciones.Get("/disponibles", habitacionHandler.GetAvailableRooms)
	habitaciones.Get("/fechas-bloqueadas", habitacionHandler.GetFechasBloqueadas)
	habitaciones.Get("/disponibilidad-fechas", habitacionHandler.GetDisponibilidadFechas)
	habitaciones.Get("/:id", habitacionHandler.GetRoomByID)

	galeria := api.Group("/galeria")
	galeria.Get("/", galleryHandler.GetImages)

	reservas := api.Group("/reservas")
	reservas.Post("/", rateLimited, reservaHandler.CreateReservaPublica)
	reservas.Post("/landing", rateLimited, reservaHandler.CreateReservaLanding)
	reservas.Post("/verificar-disponibilidad", reservaHandler.VerificarDisponibilidad)

	contacto := api.Group("/contacto")
	contacto.Post("/", rateLimited, consultaHandler.CreateConsulta)

	// Rutas de staff (operador o admin)
	staff := api.Group("/staff", auth)

	staff.Get("/reservas/:id", reservaHandler.GetReservaByID)
	staff.Post("/reservas", reservaHandler.CreateReservaStaff)
	staff.Post("/reservas/:id/verificar", reservaHandler.ConfirmarIdentidad)
	staff.Post("/reservas/:id/aprobar", reservaHandler.AprobarReserva)
	staff.Post("/reservas/:id/rechazar", reservaHandler.RechazarReserva)
	staff.Post("/reservas/:id/cancelar", reservaHandler.CancelarReserva)

	staff.Get("/habitaciones/estado", habitacionHandler.GetEstadoHabitaciones)
	staff.Get("/habitaciones/:id/estado", habitacionHandler.GetEstadoHabitacion)
	staff.Get("/habitaciones/:id/reservas", reservaHandler.GetReservasHabitacion)
	staff.Get("/habitaciones/:id/ocupacion", reservaHandler.GetOcupacionHoy)

	staff.Get("/consultas", consultaHandler.GetConsultas)
	staff.Post("/consultas/:id/resolver", consultaHandler.ResolverConsulta)

	staff.Get("/personas/buscar", personHandler.GetPersonByEmail)
	staff.Get("/personas/:id", personHandler.GetPersonByID)

	// Rutas de administración
	admin := api.Group("/admin", auth, soloAdmin)

	admin.Post("/habitaciones", habitacionHandler.CreateRoom)
	admin.Put("/habitaciones/:id", habitacionHandler.UpdateRoom)
	admin.Patch("/habitaciones/:id/disponible", habitacionHandler.SetDisponible)
	admin.Delete("/habitaciones/:id", habitacionHandler.DeleteRoom)
	admin.Post("/habitaciones/tipos", habitacionHandler.CreateRoomType)
	admin.Put("/habitaciones/tipos/:id", habitacionHandler.UpdateRoomType)

	admin.Post("/operadores", operadorHandler.CreateOperador)
	admin.Get("/operadores", operadorHandler.GetOperadores)
	admin.Get("/operadores/:id", operadorHandler.GetOperadorByID)
	admin.Put("/operadores/:id", operadorHandler.UpdateOperador)
	admin.Patch("/operadores/:id/activo", operadorHandler.SetActivo)

	admin.Post("/galeria", galleryHandler.AddImage)
	admin.Post("/galeria/upload", galleryHandler.UploadImage)
	admin.Patch("/galeria/:id/orden", galleryHandler.UpdateOrder)
	admin.Delete("/galeria/:id", galleryHandler.DeleteImage)

	reservationScheduler := scheduler.NewReservationScheduler(reservaRepo)
	reservationScheduler.Start()
	defer reservationScheduler.Stop()

	log.Info().Str("port", cfg.Server.Port).Msg("servidor iniciado")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("error iniciando el servidor")
	}
}
