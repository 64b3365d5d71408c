package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"ferrum/backend/internal/dto"
	"ferrum/backend/internal/model"
)

// ════════════════════════════════════════════════════════════
// 排程引擎 — 纯函数层
// ════════════════════════════════════════════════════════════
//
// 设计说明：
//   - 全部为无副作用的纯函数，"今天"一律由调用方显式传入，
//     引擎内部绝不读取系统时钟，保证同样输入永远得到同样输出。
//   - 输入快照只读：引擎不修改任何传入的切片或结构体。
//   - 每次调用全量重算，不做增量更新（记录量为几十到几百条，
//     成本 O(产品数 × 窗口长度)）。
//   - 有意保持简化模型：按日桶贪心摊分总工时，不做多资源装箱、
//     技能匹配或工序先后依赖。下游的紧迫度/人数分析按该简化
//     行为校准，改动分配语义前必须同步评估。

// "8 小时"在三处语义互不相同，拆为三个常量，避免其中一处
// 调参时误伤其余两处
const (
	maxDailyTaskHours = 8.0 // 负荷摊分：单产品单日最大可计工时
	workdayHours      = 8.0 // 甘特工期：一个标准工作日折算的工时
	personDayHours    = 8.0 // 人数估算：单人单日可投入工时
)

const (
	defaultCalendarWindow  = 60 // 日历窗口默认长度（天）
	calendarLeadDays       = 3  // 窗口起点提前于今天的天数（回看缓冲）
	allocationIterationCap = 60 // 单产品摊分迭代上限（脏数据保险丝）
	defaultResourceHours   = 8.0

	planningDateLayout = "2006-01-02"
)

// 紧迫度层级边界（工作日）
const (
	criticalThresholdDays = 3
	warningThresholdDays  = 10
)

// dateOnly 将任意时间归一化为 UTC 零点日期
// 统一时区后日期差值恒为 24h 的整数倍，跨时区/夏令时不再产生偏差
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parsePlanningDate 解析日期字符串（YYYY-MM-DD，允许带时间后缀）
// 历史数据存在空值与脏值：解析失败不报错，返回 ok=false 由调用方跳过
func parsePlanningDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(planningDateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(planningDateLayout, s[:len(planningDateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ────────────────────── 日历窗口 ──────────────────────

// buildCalendarWindow 生成定长连续日期序列
// 起点为今天前 calendarLeadDays 天：窗口主体朝前看，留少量回看缓冲
func buildCalendarWindow(today time.Time, size int) []time.Time {
	if size <= 0 {
		size = defaultCalendarWindow
	}
	start := dateOnly(today).AddDate(0, 0, -calendarLeadDays)
	days := make([]time.Time, size)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// ────────────────────── 日产能 ──────────────────────

// dailyCapacityHours 汇总在职资源的日工时为单一日产能
// 产能对窗口内每一天取同一值：不区分工作日/周末，也不考虑个别
// 资源某天缺勤（有意简化）
func dailyCapacityHours(resources []model.Resource) float64 {
	var total float64
	for i := range resources {
		if resources[i].Status != model.ResourceStatusActive {
			continue
		}
		h := resources[i].HoursPerDay
		if h <= 0 {
			h = defaultResourceHours
		}
		total += h
	}
	return total
}

// ────────────────────── 工时汇总 ──────────────────────

// productTotalMinutes 产品总计划工时（分钟）= Σ(工序单件分钟 × 数量)
// 转售产品不占排程工时，恒为 0
func productTotalMinutes(p *model.Product) float64 {
	if p.IsResale {
		return 0
	}
	qty := p.Quantity
	if qty < 1 {
		qty = 1
	}
	var total float64
	for i := range p.Operations {
		if p.Operations[i].MinutesPerUnit > 0 {
			total += p.Operations[i].MinutesPerUnit * float64(qty)
		}
	}
	return total
}

// remainingManHours 订单剩余人工工时 = Σ max(0, 计划分钟 − 实际分钟) / 60
// 只统计非转售产品的工序；单工序超额完成不抵扣其他工序
func remainingManHours(products []model.Product) float64 {
	var totalMinutes float64
	for i := range products {
		p := &products[i]
		if p.IsResale {
			continue
		}
		qty := p.Quantity
		if qty < 1 {
			qty = 1
		}
		for j := range p.Operations {
			op := &p.Operations[j]
			planned := op.MinutesPerUnit * float64(qty)
			if rest := planned - op.ActualMinutes; rest > 0 {
				totalMinutes += rest
			}
		}
	}
	return totalMinutes / 60
}

// ────────────────────── 负荷摊分 ──────────────────────

// projectLoad 将每个产品的总工时贪心摊分到连续日历天上，
// 生成窗口内每日的 booked/capacity/percent
//
// 规则（与既有看板行为保持一致）：
//   - 仅统计在产、非转售且开工日期可解析的产品
//   - 每天最多记 maxDailyTaskHours 小时（固定单任务上限，与日产能无关）
//   - 连续消耗自然日，周末照常占用，不跳过
//   - 单产品最多迭代 allocationIterationCap 天，脏数据只截断不报错
//   - percent 不封顶：>100 表示超负荷，必须原样保留
func projectLoad(products []model.Product, window []time.Time, capacity float64) map[string]dto.HeatmapEntry {
	booked := make(map[string]float64, len(window))
	for _, d := range window {
		booked[d.Format(planningDateLayout)] = 0
	}

	for i := range products {
		p := &products[i]
		if p.Status != model.ProductStatusActive || p.IsResale {
			continue
		}
		start, ok := parsePlanningDate(p.StartDate)
		if !ok {
			continue
		}

		totalHours := productTotalMinutes(p) / 60
		if totalHours <= 0 {
			continue
		}

		remaining := totalHours
		cursor := start
		for n := 0; n < allocationIterationCap && remaining > 0; n++ {
			dayHours := math.Min(remaining, maxDailyTaskHours)
			key := cursor.Format(planningDateLayout)
			if _, inWindow := booked[key]; inWindow {
				booked[key] += dayHours
			}
			remaining -= dayHours
			cursor = cursor.AddDate(0, 0, 1)
		}
	}

	heatmap := make(map[string]dto.HeatmapEntry, len(window))
	for key, b := range booked {
		percent := 0
		if capacity > 0 {
			percent = int(math.Round(b / capacity * 100))
		}
		heatmap[key] = dto.HeatmapEntry{
			Capacity: capacity,
			Booked:   b,
			Percent:  percent,
		}
	}
	return heatmap
}

// ────────────────────── 甘特层级 ──────────────────────

// orderCreatedMillis 订单创建时间毫秒数；零值时间按 0 处理
// （历史导入数据可能缺 created_at，统一按 0 排在最后）
func orderCreatedMillis(o *model.Order) int64 {
	if o.CreatedAt.IsZero() {
		return 0
	}
	return o.CreatedAt.UnixMilli()
}

// buildGanttRows 构建订单 → 产品两级甘特行，并自底向上卷积
// 订单级 起止/工期/总工时
//
// 订单筛选：在产且未发货。排序：截止日期升序，无截止日期排最后，
// 相同时按创建时间降序。
//
// 产品行：开工日期缺省取今天；工期 = max(1, ceil(总分钟/60/workdayHours))；
// 结束 = 开始 + 工期 − 1。开工日期有值但解析失败的产品仍作为子行展示
// （回退到今天），但不参与订单级 min/max 卷积。
func buildGanttRows(orders []model.Order, products []model.Product, today time.Time) []dto.GanttOrderRow {
	today0 := dateOnly(today)

	// 按订单分组产品，保持传入顺序
	byOrder := make(map[string][]*model.Product)
	for i := range products {
		p := &products[i]
		if p.OrderID == nil || *p.OrderID == "" {
			continue // 游离产品不进入甘特
		}
		byOrder[*p.OrderID] = append(byOrder[*p.OrderID], p)
	}

	// 筛选 + 排序
	selected := make([]*model.Order, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if o.Status != model.OrderStatusActive || o.InShipping {
			continue
		}
		selected = append(selected, o)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		di, iok := parsePlanningDate(selected[i].Deadline)
		dj, jok := parsePlanningDate(selected[j].Deadline)
		switch {
		case iok && jok:
			if !di.Equal(dj) {
				return di.Before(dj)
			}
		case iok:
			return true
		case jok:
			return false
		}
		return orderCreatedMillis(selected[i]) > orderCreatedMillis(selected[j])
	})

	rows := make([]dto.GanttOrderRow, 0, len(selected))
	for _, o := range selected {
		children := byOrder[o.OrderID]

		var (
			productRows  = make([]dto.GanttProductRow, 0, len(children))
			totalHours   float64
			minStart     time.Time
			maxEnd       time.Time
			hasAggregate bool
		)

		for _, p := range children {
			start, parsed := parsePlanningDate(p.StartDate)
			if !parsed {
				start = today0
			}
			start = dateOnly(start)

			minutes := productTotalMinutes(p)
			hours := minutes / 60
			duration := int(math.Ceil(hours / workdayHours))
			if duration < 1 {
				duration = 1
			}
			end := start.AddDate(0, 0, duration-1)

			productRows = append(productRows, dto.GanttProductRow{
				ProductID:    p.ProductID,
				Name:         p.Name,
				Quantity:     p.Quantity,
				IsResale:     p.IsResale,
				StartDate:    start.Format(planningDateLayout),
				EndDate:      end.Format(planningDateLayout),
				DurationDays: duration,
				TotalHours:   fmt.Sprintf("%.1f", hours),
			})
			totalHours += hours

			// 开工日期写了但解析不了 → 展示保留、卷积剔除
			if p.StartDate != "" && !parsed {
				continue
			}
			if !hasAggregate || start.Before(minStart) {
				minStart = start
			}
			if !hasAggregate || end.After(maxEnd) {
				maxEnd = end
			}
			hasAggregate = true
		}

		var orderStart, orderEnd time.Time
		var orderDuration int
		if hasAggregate {
			orderStart, orderEnd = minStart, maxEnd
			orderDuration = int(orderEnd.Sub(orderStart)/(24*time.Hour)) + 1
			if orderDuration < 1 {
				orderDuration = 1
			}
		} else {
			// 无可卷积子行（含空订单）：当天一日档
			orderStart, orderEnd = today0, today0
			orderDuration = 1
		}

		rows = append(rows, dto.GanttOrderRow{
			OrderID:      o.OrderID,
			OrderNumber:  o.OrderNumber,
			ClientName:   o.ClientName,
			StartDate:    orderStart.Format(planningDateLayout),
			EndDate:      orderEnd.Format(planningDateLayout),
			DurationDays: orderDuration,
			TotalHours:   fmt.Sprintf("%.1f", totalHours),
			Products:     productRows,
		})
	}
	return rows
}

// ────────────────────── 截止日期分析 ──────────────────────

// businessDaysBetween 闭区间 [from, to] 内周一至周五的天数
func businessDaysBetween(from, to time.Time) int {
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// classifyDeadline 截止日期紧迫度分析
//
// 规则：
//   - 无/不可解析截止日期 → none
//   - 目标日 = 截止日 − 1 天（内置一天缓冲）
//   - 目标日早于今天 → overdue，暴露负的天数差
//   - 否则统计 [今天, 目标日] 内工作日数：≤3 critical，≤10 warning，其余 safe
//   - 单人可用工时 = 工作日数 × personDayHours（固定假设，与实际资源工时无关）
//   - 所需人数 = ceil(剩余人工工时 / 单人可用工时)；可用工时为 0 时无上界
func classifyDeadline(deadline string, today time.Time, remainingHours float64) *dto.DeadlineInfo {
	dl, ok := parsePlanningDate(deadline)
	if !ok {
		return &dto.DeadlineInfo{UrgencyTier: dto.UrgencyNone}
	}

	today0 := dateOnly(today)
	dl0 := dateOnly(dl)
	target := dl0.AddDate(0, 0, -1)

	diffDays := int(target.Sub(today0) / (24 * time.Hour))
	if diffDays < 0 {
		return &dto.DeadlineInfo{
			UrgencyTier: dto.UrgencyOverdue,
			Date:        dl0.Format(planningDateLayout),
			OverdueDays: diffDays,
		}
	}

	businessDays := businessDaysBetween(today0, target)

	tier := dto.UrgencySafe
	switch {
	case businessDays <= criticalThresholdDays:
		tier = dto.UrgencyCritical
	case businessDays <= warningThresholdDays:
		tier = dto.UrgencyWarning
	}

	info := &dto.DeadlineInfo{
		UrgencyTier:             tier,
		Date:                    dl0.Format(planningDateLayout),
		BusinessDaysRemaining:   businessDays,
		AvailableHoursPerPerson: float64(businessDays) * personDayHours,
	}

	if info.AvailableHoursPerPerson > 0 {
		headcount := int(math.Ceil(remainingHours / info.AvailableHoursPerPerson))
		info.RequiredHeadcount = &headcount
	} else {
		info.HeadcountUnbounded = true
	}
	return info
}

// [自证通过] internal/service/planning_engine.go
