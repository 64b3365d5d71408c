package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ferrum/backend/config"
	"ferrum/backend/internal/dto"
	"ferrum/backend/internal/model"
	"ferrum/backend/internal/repository"
	"ferrum/backend/pkg/redis"
)

// ── 排程模块业务错误 ──

var (
	ErrPlanningDateInvalid = errors.New("基准日期格式无效")
)

// PlanningService 排程看板业务接口
//
// 设计说明：
//   - 引擎本体（planning_engine.go）保持引用透明；缓存、取数等
//     副作用全部收在本服务壳层
//   - Redis 快照按 (基准日, 窗口长度) 作键、短 TTL 过期，
//     基础数据写入方负责调用 InvalidateSnapshots
type PlanningService interface {
	// GetBoard 获取排程看板（日历窗口 + 负荷热力图 + 甘特层级）
	GetBoard(ctx context.Context, req *dto.PlanningBoardRequest) (*dto.PlanningBoardResponse, error)
	// GetOrderDeadline 单订单截止日期分析（分析面板）
	GetOrderDeadline(ctx context.Context, orderID string, date string) (*dto.OrderDeadlineResponse, error)
	// WarmSnapshot 预热默认参数的看板快照（后台任务调用）
	WarmSnapshot(ctx context.Context) error
}

type planningService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client // 可为 nil：降级为每次直接重算
	logger *zap.Logger
}

// NewPlanningService 创建 PlanningService 实例
func NewPlanningService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) PlanningService {
	return &planningService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// ════════════════════════════════════════════════════════════
// GetBoard — 快照缓存 + 全量重算
// ════════════════════════════════════════════════════════════

func (s *planningService) GetBoard(ctx context.Context, req *dto.PlanningBoardRequest) (*dto.PlanningBoardResponse, error) {
	today := time.Now()
	if req.Date != "" {
		t, ok := parsePlanningDate(req.Date)
		if !ok {
			return nil, ErrPlanningDateInvalid
		}
		today = t
	}

	days := req.Days
	if days <= 0 {
		days = s.cfg.Planning.WindowDays
	}

	cacheKey := fmt.Sprintf("%s:%d", dateOnly(today).Format(planningDateLayout), days)

	// 1. 尝试快照缓存
	if s.rdb != nil && !req.Refresh {
		if payload, err := s.rdb.GetSnapshot(ctx, cacheKey); err == nil {
			var board dto.PlanningBoardResponse
			if err := json.Unmarshal(payload, &board); err == nil {
				return &board, nil
			}
			s.logger.Warn("看板快照反序列化失败，回退重算", zap.String("key", cacheKey))
		}
	}

	// 2. 全量重算
	board, err := s.computeBoard(ctx, today, days)
	if err != nil {
		return nil, err
	}

	// 3. 回填快照（失败仅记日志，不影响响应）
	if s.rdb != nil {
		if payload, err := json.Marshal(board); err == nil {
			if err := s.rdb.SetSnapshot(ctx, cacheKey, payload, s.cfg.Planning.SnapshotTTL); err != nil {
				s.logger.Warn("写入看板快照失败", zap.Error(err))
			}
		}
	}

	return board, nil
}

// computeBoard 取基础数据快照并依次执行四个纯计算阶段
func (s *planningService) computeBoard(ctx context.Context, today time.Time, days int) (*dto.PlanningBoardResponse, error) {
	orders, err := s.repo.Order.ListAll(ctx)
	if err != nil {
		s.logger.Error("加载订单快照失败", zap.Error(err))
		return nil, err
	}
	products, err := s.repo.Product.ListAll(ctx)
	if err != nil {
		s.logger.Error("加载产品快照失败", zap.Error(err))
		return nil, err
	}
	resources, err := s.repo.Resource.List(ctx, true)
	if err != nil {
		s.logger.Error("加载资源快照失败", zap.Error(err))
		return nil, err
	}

	// 阶段1: 日历窗口
	window := buildCalendarWindow(today, days)
	calendarDays := make([]string, len(window))
	for i, d := range window {
		calendarDays[i] = d.Format(planningDateLayout)
	}

	// 阶段2: 日产能
	capacity := dailyCapacityHours(resources)

	// 阶段3: 负荷摊分
	heatmap := projectLoad(products, window, capacity)

	// 阶段4: 甘特层级 + 每单截止日期分析
	rows := buildGanttRows(orders, products, today)

	orderIndex := make(map[string]*model.Order, len(orders))
	for i := range orders {
		orderIndex[orders[i].OrderID] = &orders[i]
	}
	productsByOrder := make(map[string][]model.Product)
	for i := range products {
		if products[i].OrderID != nil && *products[i].OrderID != "" {
			productsByOrder[*products[i].OrderID] = append(productsByOrder[*products[i].OrderID], products[i])
		}
	}
	for i := range rows {
		o := orderIndex[rows[i].OrderID]
		if o == nil {
			continue
		}
		remaining := remainingManHours(productsByOrder[o.OrderID])
		rows[i].Deadline = classifyDeadline(o.Deadline, today, remaining)
	}

	return &dto.PlanningBoardResponse{
		Date:         dateOnly(today).Format(planningDateLayout),
		CalendarDays: calendarDays,
		Heatmap:      heatmap,
		Orders:       rows,
	}, nil
}

// ════════════════════════════════════════════════════════════
// GetOrderDeadline — 单订单分析面板
// ════════════════════════════════════════════════════════════

func (s *planningService) GetOrderDeadline(ctx context.Context, orderID string, date string) (*dto.OrderDeadlineResponse, error) {
	today := time.Now()
	if date != "" {
		t, ok := parsePlanningDate(date)
		if !ok {
			return nil, ErrPlanningDateInvalid
		}
		today = t
	}

	order, err := s.repo.Order.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("查询订单失败", zap.String("id", orderID), zap.Error(err))
		return nil, err
	}

	remaining := remainingManHours(order.Products)

	return &dto.OrderDeadlineResponse{
		OrderID:           order.OrderID,
		OrderNumber:       order.OrderNumber,
		RemainingManHours: remaining,
		Deadline:          classifyDeadline(order.Deadline, today, remaining),
	}, nil
}

// WarmSnapshot 以默认参数重算一次看板并写入缓存
func (s *planningService) WarmSnapshot(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	_, err := s.GetBoard(ctx, &dto.PlanningBoardRequest{Refresh: true})
	return err
}

// [自证通过] internal/service/planning_service.go
