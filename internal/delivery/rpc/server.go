package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"baduk/internal/bootstrap"
	"baduk/internal/domain/baduk"
	"baduk/internal/domain/game"
	errs "baduk/internal/errors"
	gameuc "baduk/internal/usecase/game"
)

type GameService struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

func NewGameService(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameService {
	return &GameService{
		cfg:    cfg,
		log:    log,
		gameUC: gameUC,
	}
}

// NewServer returns a grpc server with the game service registered. Every
// call is logged, and a panicking handler fails its call with Internal
// instead of the process.
func NewServer(svc *GameService, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		loggingInterceptor(svc.log),
		recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(recoverHandler(svc.log))),
	))
	server := grpc.NewServer(opts...)
	RegisterGameServiceServer(server, svc)
	return server
}

func (s *GameService) NewGame(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	size := s.cfg.DefaultBoardSize
	if v, ok, err := intField(in, "board_size"); err != nil {
		return nil, err
	} else if ok {
		size = v
	}
	created, err := s.gameUC.CreateGame(ctx, size)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(created)
}

func (s *GameService) GetGame(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	key, err := gameKey(in)
	if err != nil {
		return nil, err
	}
	found, err := s.gameUC.GetGame(ctx, key)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(found)
}

// PlaceStone takes game_key and either row+col or a GTP vertex, plus an
// optional color.
func (s *GameService) PlaceStone(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	key, err := gameKey(in)
	if err != nil {
		return nil, err
	}
	color, err := colorField(in)
	if err != nil {
		return nil, err
	}

	var update game.GameUpdate
	if vertex := in.GetFields()["vertex"].GetStringValue(); vertex != "" {
		update, err = s.gameUC.PlayVertex(ctx, key, vertex, color)
	} else {
		row, hasRow, rowErr := intField(in, "row")
		col, hasCol, colErr := intField(in, "col")
		if rowErr != nil || colErr != nil {
			return nil, errors.Join(rowErr, colErr)
		}
		if !hasRow || !hasCol {
			return nil, status.Error(codes.InvalidArgument, "row and col or vertex required")
		}
		update, err = s.gameUC.PlaceStone(ctx, key, row, col, color)
	}
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(update)
}

func (s *GameService) Pass(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	key, err := gameKey(in)
	if err != nil {
		return nil, err
	}
	color, err := colorField(in)
	if err != nil {
		return nil, err
	}
	update, err := s.gameUC.Pass(ctx, key, color)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(update)
}

func (s *GameService) Reset(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	key, err := gameKey(in)
	if err != nil {
		return nil, err
	}
	update, err := s.gameUC.Reset(ctx, key)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(update)
}

func gameKey(in *structpb.Struct) (string, error) {
	key := in.GetFields()["game_key"].GetStringValue()
	if key == "" {
		return "", status.Error(codes.InvalidArgument, "game_key is required")
	}
	return key, nil
}

func colorField(in *structpb.Struct) (baduk.Color, error) {
	color, err := baduk.ParseColor(in.GetFields()["color"].GetStringValue())
	if err != nil {
		return baduk.Empty, status.Error(codes.InvalidArgument, err.Error())
	}
	return color, nil
}

func intField(in *structpb.Struct, name string) (int, bool, error) {
	v, ok := in.GetFields()[name]
	if !ok {
		return 0, false, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, false, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
	}
	return int(n.NumberValue), true, nil
}

func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	var fields map[string]any
	if err = json.Unmarshal(data, &fields); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// toStatus maps engine and storage errors to grpc codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, errs.ErrGameNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, errs.ErrActionAfterGameEnd):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, errs.ErrOutOfBounds),
		errors.Is(err, errs.ErrOccupied),
		errors.Is(err, errs.ErrSuicide),
		errors.Is(err, errs.ErrInvalidSize),
		errors.Is(err, errs.ErrNotYourTurn),
		errors.Is(err, errs.ErrInvalidVertex):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, fmt.Sprintf("internal error: %v", err))
}

func loggingInterceptor(log *zap.SugaredLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			log.Warnf("grpc %s: %v", info.FullMethod, err)
		} else {
			log.Debugf("grpc %s ok", info.FullMethod)
		}
		return resp, err
	}
}

func recoverHandler(log *zap.SugaredLogger) recovery.RecoveryHandlerFuncContext {
	return func(ctx context.Context, p any) error {
		log.Errorf("grpc handler panicked: %v", p)
		return status.Error(codes.Internal, "internal error")
	}
}
