package startup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realestate_service/casbinAuthorization"
	"realestate_service/handlers"
	application "realestate_service/service"
	"realestate_service/startup/config"
	"realestate_service/storage"
	"realestate_service/store"

	"github.com/casbin/casbin"
	"github.com/go-redis/redis"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"
)

type Server struct {
	config *config.Config
}

var Logger = logrus.New()

const (
	LogFilePath = "/app/logs/realestate.log"
)

type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Data["id"] = generateUniqueID()

	msg := fmt.Sprintf("[%s] [%s] [%s] %s\n",
		entry.Time.Format("2006-01-02T15:04:05Z07:00"),
		entry.Level,
		entry.Data["id"],
		entry.Message,
	)

	return []byte(msg), nil
}

func generateUniqueID() string {
	return fmt.Sprintf("ID-%d", time.Now().UnixNano())
}

func initLogger() {
	writer, err := rotatelogs.New(
		LogFilePath+"_%Y%m%d%H%M",
		rotatelogs.WithRotationTime(15*time.Minute),
	)
	if err != nil {
		Logger.Warnf("Failed to create rotatelogs hook, logging to stdout: %v", err)
		Logger.SetOutput(os.Stdout)
	} else {
		Logger.SetOutput(writer)
	}

	Logger.SetFormatter(&CustomFormatter{})
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) initMongoClient(httpClient *http.Client) *mongo.Client {
	client, err := store.GetClientWithHTTPConfig(server.config.PropertyDBHost, server.config.PropertyDBPort, httpClient)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initRedisClient() *redis.Client {
	client, err := store.GetRedisClient(server.config.CacheHost, server.config.CachePort)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initFileStorage(tracer trace.Tracer) *storage.FileStorage {
	fileStorage, err := storage.New(Logger, tracer)
	if err != nil {
		log.Fatal(err)
	}
	if err := fileStorage.CreateDirectoriesStart(); err != nil {
		Logger.Warnf("Failed to create image root directory: %v", err)
	}
	return fileStorage
}

func (server *Server) Start() {

	initLogger()

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
		},
	}

	mongoClient := server.initMongoClient(httpClient)
	defer func(mongoClient *mongo.Client, ctx context.Context) {
		err := mongoClient.Disconnect(ctx)
		if err != nil {
			log.Println(err)
		}
	}(mongoClient, context.Background())

	ctx := context.Background()
	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("realestate_service")
	otel.SetTextMapPropagator(propagation.TraceContext{})

	redisClient := server.initRedisClient()

	propertyStore := store.NewPropertyMongoDBStore(mongoClient, tracer)
	userStore := store.NewUserMongoDBStore(mongoClient, tracer)
	contactStore := store.NewContactMongoDBStore(mongoClient, tracer)
	likeStore := store.NewLikeMongoDBStore(mongoClient, tracer)
	transactionStore := store.NewTransactionMongoDBStore(mongoClient, tracer)

	otpCache := store.NewOtpRedisCache(redisClient, tracer)
	propertyCache := store.NewPropertyRedisCache(redisClient, log.New(os.Stdout, "[property-cache] ", log.LstdFlags), tracer)

	fileStorage := server.initFileStorage(tracer)
	defer fileStorage.Close()

	mailService := application.NewMailService(Logger)

	propertyService := application.NewPropertyService(propertyStore, userStore, likeStore,
		contactStore, transactionStore, propertyCache, mailService, tracer)
	userService := application.NewUserService(userStore, otpCache, mailService, tracer)
	contactService := application.NewContactService(contactStore, propertyStore, userStore, tracer)
	likeService := application.NewLikeService(likeStore, propertyStore, userStore, tracer)
	transactionService := application.NewTransactionService(transactionStore, propertyStore,
		userStore, propertyCache, tracer)

	propertyHandler := handlers.NewPropertyHandler(propertyService, fileStorage, tracer)
	authHandler := handlers.NewAuthHandler(userService, tracer)
	contactHandler := handlers.NewContactHandler(contactService, tracer)
	likeHandler := handlers.NewLikeHandler(likeService, tracer)
	transactionHandler := handlers.NewTransactionHandler(transactionService, tracer)

	if os.Getenv("SEED_DATA") == "true" {
		seed(ctx, userStore, propertyStore, Logger)
	}

	server.start(propertyHandler, authHandler, contactHandler, likeHandler, transactionHandler)
}

func (server *Server) start(propertyHandler *handlers.PropertyHandler, authHandler *handlers.AuthHandler,
	contactHandler *handlers.ContactHandler, likeHandler *handlers.LikeHandler,
	transactionHandler *handlers.TransactionHandler) {

	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)

	enforcer, err := casbin.NewEnforcerSafe("./rbac_model.conf", "./policy.csv")
	if err != nil {
		log.Fatal(err)
	}
	router.Use(casbinAuthorization.CasbinMiddleware(enforcer, Logger))

	propertyHandler.Init(router)
	authHandler.Init(router)
	contactHandler.Init(router)
	likeHandler.Init(router)
	transactionHandler.Init(router)

	cors := gorillaHandlers.CORS(gorillaHandlers.AllowedOrigins([]string{"*"}))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: cors(router),
	}

	wait := time.Second * 15
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("realestate_service"),
		),
	)

	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(rw, h)
	})
}
