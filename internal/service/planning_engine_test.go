package service

import (
	"math"
	"testing"
	"time"

	"ferrum/backend/internal/dto"
	"ferrum/backend/internal/model"
)

// 固定基准日：2025-06-02 是周一，便于推演工作日
var testToday = time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

func mkDay(offset int) time.Time {
	return dateOnly(testToday).AddDate(0, 0, offset)
}

func mkDayStr(offset int) string {
	return mkDay(offset).Format(planningDateLayout)
}

// ────────────────────── 日期解析 ──────────────────────

func TestParsePlanningDate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		ok    bool
		want  string
	}{
		{"标准日期", "2025-06-02", true, "2025-06-02"},
		{"带时间后缀", "2025-06-02T10:00:00", true, "2025-06-02"},
		{"前后空白", " 2025-06-02 ", true, "2025-06-02"},
		{"空字符串", "", false, ""},
		{"脏数据", "garbage", false, ""},
		{"非补零格式", "2025-6-2", false, ""},
		{"纯空白", "   ", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parsePlanningDate(tc.input)
			if ok != tc.ok {
				t.Fatalf("parsePlanningDate(%q) ok = %v, 期望 %v", tc.input, ok, tc.ok)
			}
			if ok && got.Format(planningDateLayout) != tc.want {
				t.Errorf("parsePlanningDate(%q) = %s, 期望 %s", tc.input, got.Format(planningDateLayout), tc.want)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	in := time.Date(2025, 6, 2, 23, 59, 0, 0, loc)
	got := dateOnly(in)
	if got.Hour() != 0 || got.Location() != time.UTC {
		t.Errorf("dateOnly 应归一化到 UTC 零点, got %v", got)
	}
	if got.Format(planningDateLayout) != "2025-06-02" {
		t.Errorf("dateOnly 不应改变历法日期, got %s", got.Format(planningDateLayout))
	}
}

// ────────────────────── 日历窗口 ──────────────────────

func TestBuildCalendarWindow(t *testing.T) {
	window := buildCalendarWindow(testToday, 60)

	if len(window) != 60 {
		t.Fatalf("窗口长度 = %d, 期望 60", len(window))
	}
	if !window[0].Equal(mkDay(-3)) {
		t.Errorf("窗口起点 = %s, 期望 %s", window[0].Format(planningDateLayout), mkDayStr(-3))
	}
	for i := 1; i < len(window); i++ {
		if !window[i].Equal(window[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("窗口第 %d 天不连续", i)
		}
	}
}

func TestBuildCalendarWindowDefaultSize(t *testing.T) {
	if got := len(buildCalendarWindow(testToday, 0)); got != defaultCalendarWindow {
		t.Errorf("size<=0 时窗口长度 = %d, 期望 %d", got, defaultCalendarWindow)
	}
}

// ────────────────────── 日产能 ──────────────────────

func TestDailyCapacityHours(t *testing.T) {
	resources := []model.Resource{
		{ResourceID: "r1", HoursPerDay: 8, Status: model.ResourceStatusActive},
		{ResourceID: "r2", HoursPerDay: 6, Status: model.ResourceStatusActive},
		{ResourceID: "r3", HoursPerDay: 8, Status: model.ResourceStatusFired}, // 离职不计
	}

	if got := dailyCapacityHours(resources); got != 14 {
		t.Errorf("日产能 = %v, 期望 14", got)
	}
}

func TestDailyCapacityHoursDefaultsZeroHours(t *testing.T) {
	resources := []model.Resource{
		{ResourceID: "r1", HoursPerDay: 0, Status: model.ResourceStatusActive},
		{ResourceID: "r2", HoursPerDay: -3, Status: model.ResourceStatusActive},
	}

	// 非法工时回退到默认 8 小时
	if got := dailyCapacityHours(resources); got != 16 {
		t.Errorf("日产能 = %v, 期望 16", got)
	}
}

// ────────────────────── 工时汇总 ──────────────────────

func TestProductTotalMinutes(t *testing.T) {
	p := &model.Product{
		Quantity: 2,
		Operations: []model.Operation{
			{MinutesPerUnit: 60},
			{MinutesPerUnit: 30},
			{MinutesPerUnit: -5}, // 脏数据忽略
		},
	}

	if got := productTotalMinutes(p); got != 180 {
		t.Errorf("总分钟 = %v, 期望 180", got)
	}
}

func TestProductTotalMinutesResaleIsZero(t *testing.T) {
	p := &model.Product{
		Quantity:   5,
		IsResale:   true,
		Operations: []model.Operation{{MinutesPerUnit: 60}},
	}
	if got := productTotalMinutes(p); got != 0 {
		t.Errorf("转售产品总分钟 = %v, 期望 0", got)
	}
}

func TestProductTotalMinutesQuantityFloor(t *testing.T) {
	p := &model.Product{
		Quantity:   0, // 脏数据按 1 处理
		Operations: []model.Operation{{MinutesPerUnit: 45}},
	}
	if got := productTotalMinutes(p); got != 45 {
		t.Errorf("总分钟 = %v, 期望 45", got)
	}
}

func TestRemainingManHours(t *testing.T) {
	products := []model.Product{
		{
			Quantity: 2,
			Operations: []model.Operation{
				{MinutesPerUnit: 60, ActualMinutes: 150}, // 计划 120 超额完成，按 0
				{MinutesPerUnit: 30, ActualMinutes: 0},   // 剩 60
			},
		},
		{
			Quantity:   3,
			IsResale:   true, // 转售不计
			Operations: []model.Operation{{MinutesPerUnit: 100}},
		},
	}

	if got := remainingManHours(products); got != 1 {
		t.Errorf("剩余人工工时 = %v, 期望 1", got)
	}
}

// ────────────────────── 负荷摊分 ──────────────────────

func TestProjectLoadSmallProductSingleDay(t *testing.T) {
	window := buildCalendarWindow(testToday, 60)
	products := []model.Product{
		{
			ProductID: "p1",
			Quantity:  2,
			StartDate: mkDayStr(0),
			Status:    model.ProductStatusActive,
			Operations: []model.Operation{
				{MinutesPerUnit: 60},
				{MinutesPerUnit: 30},
			},
		},
	}

	heatmap := projectLoad(products, window, 14)

	entry := heatmap[mkDayStr(0)]
	if entry.Booked != 3 {
		t.Errorf("开工日负荷 = %v, 期望 3", entry.Booked)
	}
	if entry.Capacity != 14 {
		t.Errorf("产能 = %v, 期望 14", entry.Capacity)
	}
	if want := int(math.Round(3.0 / 14 * 100)); entry.Percent != want {
		t.Errorf("负荷率 = %d, 期望 %d", entry.Percent, want)
	}
	if next := heatmap[mkDayStr(1)]; next.Booked != 0 {
		t.Errorf("次日负荷 = %v, 期望 0", next.Booked)
	}
}

func TestProjectLoadSpillsAcrossDays(t *testing.T) {
	window := buildCalendarWindow(testToday, 60)
	// 20 小时 → 8 + 8 + 4 连续三天（周末照常占用）
	products := []model.Product{
		{
			ProductID:  "p1",
			Quantity:   1,
			StartDate:  mkDayStr(0),
			Status:     model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 1200}},
		},
	}

	heatmap := projectLoad(products, window, 10)

	wants := map[string]float64{
		mkDayStr(0): 8,
		mkDayStr(1): 8,
		mkDayStr(2): 4,
		mkDayStr(3): 0,
	}
	for day, want := range wants {
		if got := heatmap[day].Booked; got != want {
			t.Errorf("日 %s 负荷 = %v, 期望 %v", day, got, want)
		}
	}
}

func TestProjectLoadPercentNotClamped(t *testing.T) {
	window := buildCalendarWindow(testToday, 60)
	products := []model.Product{
		{
			ProductID:  "p1",
			Quantity:   1,
			StartDate:  mkDayStr(0),
			Status:     model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 480}},
		},
	}

	heatmap := projectLoad(products, window, 4)

	if got := heatmap[mkDayStr(0)].Percent; got != 200 {
		t.Errorf("超负荷 percent = %d, 期望 200（不封顶）", got)
	}
}

func TestProjectLoadZeroCapacity(t *testing.T) {
	window := buildCalendarWindow(testToday, 60)
	products := []model.Product{
		{
			ProductID:  "p1",
			Quantity:   1,
			StartDate:  mkDayStr(0),
			Status:     model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 60}},
		},
	}

	heatmap := projectLoad(products, window, 0)

	entry := heatmap[mkDayStr(0)]
	if entry.Percent != 0 {
		t.Errorf("零产能 percent = %d, 期望 0", entry.Percent)
	}
	if entry.Booked != 1 {
		t.Errorf("零产能 booked = %v, 期望 1", entry.Booked)
	}
}

func TestProjectLoadSkipsIneligibleProducts(t *testing.T) {
	window := buildCalendarWindow(testToday, 60)
	products := []model.Product{
		{ProductID: "done", Quantity: 1, StartDate: mkDayStr(0),
			Status: model.ProductStatusCompleted, Operations: []model.Operation{{MinutesPerUnit: 60}}},
		{ProductID: "resale", Quantity: 1, StartDate: mkDayStr(0), IsResale: true,
			Status: model.ProductStatusActive, Operations: []model.Operation{{MinutesPerUnit: 60}}},
		{ProductID: "badDate", Quantity: 1, StartDate: "not-a-date",
			Status: model.ProductStatusActive, Operations: []model.Operation{{MinutesPerUnit: 60}}},
		{ProductID: "noDate", Quantity: 1, StartDate: "",
			Status: model.ProductStatusActive, Operations: []model.Operation{{MinutesPerUnit: 60}}},
		{ProductID: "noWork", Quantity: 1, StartDate: mkDayStr(0),
			Status: model.ProductStatusActive},
	}

	heatmap := projectLoad(products, window, 14)

	for day, entry := range heatmap {
		if entry.Booked != 0 {
			t.Errorf("日 %s 负荷 = %v, 期望全为 0", day, entry.Booked)
		}
	}
}

func TestProjectLoadPartiallyOutsideWindow(t *testing.T) {
	window := buildCalendarWindow(testToday, 60)
	// 开工在窗口起点前一天：首日 8h 落在窗口外丢弃，次日起计入
	products := []model.Product{
		{
			ProductID:  "p1",
			Quantity:   1,
			StartDate:  mkDayStr(-4),
			Status:     model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 960}}, // 16h
		},
	}

	heatmap := projectLoad(products, window, 14)

	if got := heatmap[mkDayStr(-3)].Booked; got != 8 {
		t.Errorf("窗口首日负荷 = %v, 期望 8", got)
	}
	if got := heatmap[mkDayStr(-2)].Booked; got != 0 {
		t.Errorf("窗口次日负荷 = %v, 期望 0", got)
	}
}

func TestProjectLoadIterationCap(t *testing.T) {
	window := buildCalendarWindow(testToday, 60)
	// 1000 小时远超 60 天 × 8h 上限：摊分在第 60 天截断，不死循环
	products := []model.Product{
		{
			ProductID:  "p1",
			Quantity:   1,
			StartDate:  mkDayStr(0),
			Status:     model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 60000}},
		},
	}

	heatmap := projectLoad(products, window, 14)

	var total float64
	for _, entry := range heatmap {
		total += entry.Booked
	}
	// 窗口内可落 [today, today+56] 共 57 天 × 8h
	if total != 57*maxDailyTaskHours {
		t.Errorf("窗口内总负荷 = %v, 期望 %v", total, 57*maxDailyTaskHours)
	}
}

// ────────────────────── 工作日统计 ──────────────────────

func TestBusinessDaysBetween(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"整周一至周五", mkDay(0), mkDay(4), 5},
		{"单个周一", mkDay(0), mkDay(0), 1},
		{"跨周末", mkDay(0), mkDay(7), 6},
		{"纯周末", mkDay(5), mkDay(6), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := businessDaysBetween(tc.from, tc.to); got != tc.want {
				t.Errorf("businessDaysBetween = %d, 期望 %d", got, tc.want)
			}
		})
	}
}

// ────────────────────── 截止日期分析 ──────────────────────

func TestClassifyDeadlineTiers(t *testing.T) {
	cases := []struct {
		name         string
		deadline     string
		wantTier     string
		wantBizDays  int
	}{
		// 基准日周一 2025-06-02，目标日 = 截止日 − 1
		{"3个工作日_critical", "2025-06-05", dto.UrgencyCritical, 3},
		{"4个工作日_warning", "2025-06-06", dto.UrgencyWarning, 4},
		{"10个工作日_warning", "2025-06-14", dto.UrgencyWarning, 10},
		{"11个工作日_safe", "2025-06-17", dto.UrgencySafe, 11},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := classifyDeadline(tc.deadline, testToday, 40)
			if info.UrgencyTier != tc.wantTier {
				t.Errorf("紧迫度 = %s, 期望 %s", info.UrgencyTier, tc.wantTier)
			}
			if info.BusinessDaysRemaining != tc.wantBizDays {
				t.Errorf("剩余工作日 = %d, 期望 %d", info.BusinessDaysRemaining, tc.wantBizDays)
			}
			if info.Date != tc.deadline {
				t.Errorf("回显日期 = %s, 期望 %s", info.Date, tc.deadline)
			}
		})
	}
}

func TestClassifyDeadlineNone(t *testing.T) {
	for _, deadline := range []string{"", "not-a-date", "2025/06/10"} {
		info := classifyDeadline(deadline, testToday, 40)
		if info.UrgencyTier != dto.UrgencyNone {
			t.Errorf("deadline=%q 紧迫度 = %s, 期望 none", deadline, info.UrgencyTier)
		}
	}
}

func TestClassifyDeadlineOverdue(t *testing.T) {
	// 截止日等于今天：目标日已在昨天，视为逾期
	info := classifyDeadline(mkDayStr(0), testToday, 40)
	if info.UrgencyTier != dto.UrgencyOverdue {
		t.Fatalf("紧迫度 = %s, 期望 overdue", info.UrgencyTier)
	}
	if info.OverdueDays != -1 {
		t.Errorf("逾期天数 = %d, 期望 -1", info.OverdueDays)
	}

	info = classifyDeadline(mkDayStr(-1), testToday, 40)
	if info.OverdueDays != -2 {
		t.Errorf("昨日截止逾期天数 = %d, 期望 -2", info.OverdueDays)
	}
}

func TestClassifyDeadlineHeadcount(t *testing.T) {
	// 截止 2025-06-10（周二）：目标日周一 6/9，工作日 6 天 → 可用 48h
	info := classifyDeadline("2025-06-10", testToday, 100)

	if info.AvailableHoursPerPerson != 48 {
		t.Fatalf("单人可用工时 = %v, 期望 48", info.AvailableHoursPerPerson)
	}
	if info.RequiredHeadcount == nil {
		t.Fatal("期望返回所需人数")
	}
	if *info.RequiredHeadcount != 3 {
		t.Errorf("所需人数 = %d, 期望 3 (ceil(100/48))", *info.RequiredHeadcount)
	}
	if info.HeadcountUnbounded {
		t.Error("可用工时非零时不应标记无上界")
	}
}

func TestClassifyDeadlineHeadcountUnbounded(t *testing.T) {
	// 基准日周六 2025-06-07，截止下周一：区间 [周六, 周日] 无工作日
	saturday := time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC)
	info := classifyDeadline("2025-06-09", saturday, 100)

	if info.AvailableHoursPerPerson != 0 {
		t.Fatalf("单人可用工时 = %v, 期望 0", info.AvailableHoursPerPerson)
	}
	if info.RequiredHeadcount != nil {
		t.Error("可用工时为零时不应返回具体人数")
	}
	if !info.HeadcountUnbounded {
		t.Error("可用工时为零时应标记人数无上界")
	}
}

// ────────────────────── 甘特层级 ──────────────────────

func ganttOrder(id, number, deadline string, createdOffsetMin int) model.Order {
	o := model.Order{
		OrderID:     id,
		OrderNumber: number,
		ClientName:  "客户" + number,
		Deadline:    deadline,
		Status:      model.OrderStatusActive,
	}
	o.CreatedAt = testToday.Add(time.Duration(createdOffsetMin) * time.Minute)
	return o
}

func TestBuildGanttRowsOrdering(t *testing.T) {
	orders := []model.Order{
		ganttOrder("a", "A", "2025-06-10", 0),
		ganttOrder("b", "B", "2025-06-05", 0),
		ganttOrder("c", "C", "", 20),          // 无截止日期排后，创建晚者在前
		ganttOrder("d", "D", "bad-value", 10), // 脏截止日期按无截止处理
	}

	rows := buildGanttRows(orders, nil, testToday)

	if len(rows) != 4 {
		t.Fatalf("甘特行数 = %d, 期望 4", len(rows))
	}
	wantOrder := []string{"B", "A", "C", "D"}
	for i, want := range wantOrder {
		if rows[i].OrderNumber != want {
			t.Errorf("第 %d 行 = %s, 期望 %s", i, rows[i].OrderNumber, want)
		}
	}
}

func TestBuildGanttRowsFiltersOrders(t *testing.T) {
	completed := ganttOrder("done", "DONE", "", 0)
	completed.Status = model.OrderStatusCompleted
	shipping := ganttOrder("ship", "SHIP", "", 0)
	shipping.InShipping = true

	rows := buildGanttRows([]model.Order{completed, shipping}, nil, testToday)

	if len(rows) != 0 {
		t.Errorf("已完成/发货中订单不应出现在甘特, got %d 行", len(rows))
	}
}

func TestBuildGanttRowsEmptyOrder(t *testing.T) {
	rows := buildGanttRows([]model.Order{ganttOrder("a", "A", "", 0)}, nil, testToday)

	if len(rows) != 1 {
		t.Fatalf("甘特行数 = %d, 期望 1", len(rows))
	}
	row := rows[0]
	if row.StartDate != mkDayStr(0) || row.EndDate != mkDayStr(0) {
		t.Errorf("空订单起止 = %s/%s, 期望当天", row.StartDate, row.EndDate)
	}
	if row.DurationDays != 1 {
		t.Errorf("空订单工期 = %d, 期望 1", row.DurationDays)
	}
	if row.TotalHours != "0.0" {
		t.Errorf("空订单总工时 = %s, 期望 0.0", row.TotalHours)
	}
}

func TestBuildGanttRowsProductRow(t *testing.T) {
	orderID := "a"
	products := []model.Product{
		{
			ProductID: "p1", OrderID: &orderID, Name: "机架", Quantity: 2,
			StartDate: mkDayStr(0), Status: model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 60}, {MinutesPerUnit: 30}},
		},
	}

	rows := buildGanttRows([]model.Order{ganttOrder(orderID, "A", "", 0)}, products, testToday)

	if len(rows) != 1 || len(rows[0].Products) != 1 {
		t.Fatalf("期望 1 行订单含 1 行产品")
	}
	p := rows[0].Products[0]
	if p.TotalHours != "3.0" {
		t.Errorf("产品总工时 = %s, 期望 3.0", p.TotalHours)
	}
	if p.DurationDays != 1 {
		t.Errorf("产品工期 = %d, 期望 1", p.DurationDays)
	}
	if p.StartDate != mkDayStr(0) || p.EndDate != mkDayStr(0) {
		t.Errorf("产品起止 = %s/%s, 期望当天", p.StartDate, p.EndDate)
	}
}

func TestBuildGanttRowsDurationCeil(t *testing.T) {
	orderID := "a"
	// 20 小时 → ceil(20/8) = 3 天
	products := []model.Product{
		{
			ProductID: "p1", OrderID: &orderID, Quantity: 1,
			StartDate: mkDayStr(0), Status: model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 1200}},
		},
	}

	rows := buildGanttRows([]model.Order{ganttOrder(orderID, "A", "", 0)}, products, testToday)

	p := rows[0].Products[0]
	if p.DurationDays != 3 {
		t.Errorf("产品工期 = %d, 期望 3", p.DurationDays)
	}
	if p.EndDate != mkDayStr(2) {
		t.Errorf("产品结束 = %s, 期望 %s", p.EndDate, mkDayStr(2))
	}
}

func TestBuildGanttRowsResaleProduct(t *testing.T) {
	orderID := "a"
	products := []model.Product{
		{
			ProductID: "p1", OrderID: &orderID, Quantity: 3, IsResale: true,
			StartDate: mkDayStr(0), Status: model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 600}},
		},
	}

	rows := buildGanttRows([]model.Order{ganttOrder(orderID, "A", "", 0)}, products, testToday)

	p := rows[0].Products[0]
	if p.TotalHours != "0.0" {
		t.Errorf("转售产品总工时 = %s, 期望 0.0", p.TotalHours)
	}
	if p.DurationDays != 1 {
		t.Errorf("转售产品工期 = %d, 期望 1", p.DurationDays)
	}
	if !p.IsResale {
		t.Error("转售标记丢失")
	}
}

func TestBuildGanttRowsRollup(t *testing.T) {
	orderID := "a"
	products := []model.Product{
		{ // 今天开工 3h → 当天结束
			ProductID: "p1", OrderID: &orderID, Quantity: 1,
			StartDate: mkDayStr(0), Status: model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 180}},
		},
		{ // +4 天开工 20h → 3 天工期，+6 结束
			ProductID: "p2", OrderID: &orderID, Quantity: 1,
			StartDate: mkDayStr(4), Status: model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 1200}},
		},
	}

	rows := buildGanttRows([]model.Order{ganttOrder(orderID, "A", "", 0)}, products, testToday)

	row := rows[0]
	if row.StartDate != mkDayStr(0) {
		t.Errorf("订单开始 = %s, 期望 %s", row.StartDate, mkDayStr(0))
	}
	if row.EndDate != mkDayStr(6) {
		t.Errorf("订单结束 = %s, 期望 %s", row.EndDate, mkDayStr(6))
	}
	if row.DurationDays != 7 {
		t.Errorf("订单工期 = %d, 期望 7", row.DurationDays)
	}
	if row.TotalHours != "23.0" {
		t.Errorf("订单总工时 = %s, 期望 23.0", row.TotalHours)
	}
}

func TestBuildGanttRowsUnparsableStartDateExcludedFromRollup(t *testing.T) {
	orderID := "a"
	products := []model.Product{
		{ // 正常子行：+5 天开工
			ProductID: "good", OrderID: &orderID, Quantity: 1,
			StartDate: mkDayStr(5), Status: model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 60}},
		},
		{ // 脏开工日期：展示回退今天，但不参与卷积
			ProductID: "bad", OrderID: &orderID, Quantity: 1,
			StartDate: "06/15/2025", Status: model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 60}},
		},
	}

	rows := buildGanttRows([]model.Order{ganttOrder(orderID, "A", "", 0)}, products, testToday)

	row := rows[0]
	if len(row.Products) != 2 {
		t.Fatalf("产品行数 = %d, 期望 2（脏日期子行保留展示）", len(row.Products))
	}
	if row.Products[1].StartDate != mkDayStr(0) {
		t.Errorf("脏日期子行开始 = %s, 期望回退今天", row.Products[1].StartDate)
	}
	// 卷积只看 good：订单档期不含今天
	if row.StartDate != mkDayStr(5) {
		t.Errorf("订单开始 = %s, 期望 %s（脏日期子行不拉低）", row.StartDate, mkDayStr(5))
	}
}

func TestBuildGanttRowsMissingStartDateRollsUp(t *testing.T) {
	orderID := "a"
	products := []model.Product{
		{ // 未填开工日期：回退今天且参与卷积
			ProductID: "p1", OrderID: &orderID, Quantity: 1,
			StartDate: "", Status: model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 60}},
		},
	}

	rows := buildGanttRows([]model.Order{ganttOrder(orderID, "A", "", 0)}, products, testToday)

	row := rows[0]
	if row.StartDate != mkDayStr(0) || row.EndDate != mkDayStr(0) {
		t.Errorf("订单起止 = %s/%s, 期望当天", row.StartDate, row.EndDate)
	}
}

func TestBuildGanttRowsOrphanProductSkipped(t *testing.T) {
	products := []model.Product{
		{ProductID: "orphan", OrderID: nil, Quantity: 1,
			StartDate: mkDayStr(0), Status: model.ProductStatusActive,
			Operations: []model.Operation{{MinutesPerUnit: 60}}},
	}

	rows := buildGanttRows([]model.Order{ganttOrder("a", "A", "", 0)}, products, testToday)

	if len(rows[0].Products) != 0 {
		t.Errorf("游离产品不应出现在甘特, got %d 行", len(rows[0].Products))
	}
}

// [自证通过] internal/service/planning_engine_test.go
