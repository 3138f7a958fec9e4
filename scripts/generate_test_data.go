package main

import (
	"errors"
	"flag"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/habitlog/internal/analytics"
	"github.com/habitlog/internal/config"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/service"
)

// 每个目标在生成数据中的完成概率
var goalRates = map[string]float64{
	analytics.GoalBedBefore11PM:    0.6,
	analytics.GoalEightHoursSleep:  0.55,
	analytics.GoalWakeBy730AM:      0.7,
	analytics.GoalWorkout:          0.5,
	analytics.GoalTenKSteps:        0.45,
	analytics.GoalReadInvesting:    0.75,
	analytics.GoalReadFinance:      0.7,
	analytics.GoalReadCrypto:       0.65,
	analytics.GoalPlayWithAI:       0.8,
	analytics.GoalReadingBooks:     0.4,
	analytics.GoalPostedTwitter:    0.3,
	analytics.GoalPostedLinkedIn:   0.2,
	analytics.GoalPersonReachedOut: 0.25,
}

var reachedOutNames = []string{"Alice", "Bob", "Carol", "Dana", "Eli", "Farah", "Gus"}

// 测试数据生成器：为最近 N 天生成随机打卡记录，偶尔留空一天以便检查缺失日期。
func main() {
	days := flag.Int("days", 60, "number of past days to fill")
	seed := flag.Uint64("seed", 42, "random seed")
	gapRate := flag.Float64("gaps", 0.1, "probability of leaving a day without an entry")
	overwrite := flag.Bool("overwrite", false, "replace entries that already exist")
	flag.Parse()

	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath, cfg.DatabaseURL); err != nil {
		log.Fatal("数据库初始化失败", "error", err)
	}

	tracking := service.NewTrackingService(db.DB, nil)
	today := analytics.DateOf(time.Now().In(cfg.Location()))

	created, err := generateEntries(tracking, today, *days, rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)), *gapRate, *overwrite)
	if err != nil {
		log.Fatal("生成测试数据失败", "error", err)
	}

	log.Info("测试数据生成完成", "entries", created, "days", *days)
}

// generateEntries 从 today 往前生成 days 天的数据（含 today），返回写入条数。
func generateEntries(tracking *service.TrackingService, today time.Time, days int, rng *rand.Rand, gapRate float64, overwrite bool) (int, error) {
	created := 0
	for offset := days - 1; offset >= 0; offset-- {
		date := today.AddDate(0, 0, -offset)

		if offset > 0 && rng.Float64() < gapRate {
			continue
		}

		if !overwrite {
			_, err := tracking.Get(date)
			if err == nil {
				continue
			}
			if !errors.Is(err, service.ErrEntryNotFound) {
				return created, err
			}
		}

		if _, err := tracking.Upsert(randomEntry(date, rng)); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func randomEntry(date time.Time, rng *rand.Rand) service.EntryInput {
	hit := func(key string) bool {
		return rng.Float64() < goalRates[key]
	}

	input := service.EntryInput{
		EntryDate:       date,
		BedBefore11PM:   hit(analytics.GoalBedBefore11PM),
		EightHoursSleep: hit(analytics.GoalEightHoursSleep),
		WakeBy730AM:     hit(analytics.GoalWakeBy730AM),
		Workout:         hit(analytics.GoalWorkout),
		TenKSteps:       hit(analytics.GoalTenKSteps),
		ReadInvesting:   hit(analytics.GoalReadInvesting),
		ReadFinance:     hit(analytics.GoalReadFinance),
		ReadCrypto:      hit(analytics.GoalReadCrypto),
		PlayWithAI:      hit(analytics.GoalPlayWithAI),
		ReadingBooks:    hit(analytics.GoalReadingBooks),
		PostedTwitter:   hit(analytics.GoalPostedTwitter),
		PostedLinkedIn:  hit(analytics.GoalPostedLinkedIn),
	}
	if hit(analytics.GoalPersonReachedOut) {
		input.PersonReachedOut = reachedOutNames[rng.IntN(len(reachedOutNames))]
	}
	return input
}
