package service

import (
	"io"
	"strconv"
	"strings"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/auth"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/biz"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/errors"

	pkgErrors "github.com/gaoyong06/go-pkg/errors"
	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewWordGameService)

// WordGameService 游戏后端 HTTP 服务
type WordGameService struct {
	lifeUc    *biz.LifeUsecase
	paymentUc *biz.PaymentUsecase
	playerUc  *biz.PlayerUsecase
	wordUc    *biz.WordUsecase
	scoreUc   *biz.ScoreUsecase
	catalog   *biz.Catalog
	log       *log.Helper
}

// NewWordGameService 创建游戏服务实例
func NewWordGameService(
	lifeUc *biz.LifeUsecase,
	paymentUc *biz.PaymentUsecase,
	playerUc *biz.PlayerUsecase,
	wordUc *biz.WordUsecase,
	scoreUc *biz.ScoreUsecase,
	catalog *biz.Catalog,
	logger log.Logger,
) *WordGameService {
	return &WordGameService{
		lifeUc:    lifeUc,
		paymentUc: paymentUc,
		playerUc:  playerUc,
		wordUc:    wordUc,
		scoreUc:   scoreUc,
		catalog:   catalog,
		log:       log.NewHelper(logger),
	}
}

// RegisterRoutes 注册业务路由
func (s *WordGameService) RegisterRoutes(srv *khttp.Server) {
	r := srv.Route("/api")
	r.POST("/register", s.Register)
	r.POST("/login", s.Login)
	r.GET("/lives", s.GetLives)
	r.POST("/lives/consume", s.ConsumeLife)
	r.GET("/plans", s.ListPlans)
	r.POST("/pay/checkout/create", s.CreateCheckout)
	r.GET("/pay/order-status", s.OrderStatus)
	r.POST("/payments/webhook", s.PaymentWebhook)
	r.GET("/words", s.ListWords)
	r.POST("/score", s.SubmitScore)
	r.GET("/history", s.ScoreHistory)
}

// GetLives 查询当前体力
func (s *WordGameService) GetLives(ctx khttp.Context) error {
	playerID, err := auth.RequirePlayerID(ctx)
	if err != nil {
		return err
	}
	status, err := s.lifeUc.GetLives(ctx, playerID)
	if err != nil {
		return err
	}
	return ctx.Result(200, toLifeStatusReply(status))
}

// ConsumeLife 消耗一条体力
// 体力不足返回 403，响应体仍携带完整状态
func (s *WordGameService) ConsumeLife(ctx khttp.Context) error {
	playerID, err := auth.RequirePlayerID(ctx)
	if err != nil {
		return err
	}
	status, err := s.lifeUc.ConsumeLife(ctx, playerID)
	if err != nil {
		if se := kerrors.FromError(err); status != nil && se != nil && int(se.Code) == errors.ErrCodeNoLives {
			reply := &ConsumeLifeErrorReply{Error: se.Message}
			reply.LifeStatusReply = *toLifeStatusReply(status)
			return ctx.Result(403, reply)
		}
		return err
	}
	return ctx.Result(200, toLifeStatusReply(status))
}

// ListPlans 获取付费套餐列表
func (s *WordGameService) ListPlans(ctx khttp.Context) error {
	plans := s.catalog.List()
	reply := &ListPlansReply{Plans: make([]*PlanReply, 0, len(plans))}
	for _, p := range plans {
		reply.Plans = append(reply.Plans, &PlanReply{
			PlanID:         p.PlanID,
			Title:          p.Title,
			RewardType:     p.RewardType,
			LivesGain:      p.LivesGain,
			MembershipType: p.MembershipType,
			MembershipDays: p.MembershipDays,
			AmountCents:    p.AmountCents,
			Currency:       p.Currency,
		})
	}
	return ctx.Result(200, reply)
}

// CreateCheckout 创建支付结账会话
func (s *WordGameService) CreateCheckout(ctx khttp.Context) error {
	playerID, err := auth.RequirePlayerID(ctx)
	if err != nil {
		return err
	}
	var req CreateCheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if req.PlanID == "" {
		return pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodePlanRequired)
	}
	res, err := s.paymentUc.CreateCheckout(ctx, playerID, req.PlanID)
	if err != nil {
		return err
	}
	return ctx.Result(200, &CreateCheckoutReply{
		OrderNo:           res.OrderNo,
		CheckoutURL:       res.CheckoutURL,
		ProviderSessionID: res.ProviderSessionID,
		ExpiresAt:         res.ExpiresAt,
	})
}

// OrderStatus 查询订单状态 (客户端支付后轮询)
// 已支付订单返回重算后的体力/会员状态
func (s *WordGameService) OrderStatus(ctx khttp.Context) error {
	playerID, err := auth.RequirePlayerID(ctx)
	if err != nil {
		return err
	}
	orderNo := ctx.Request().URL.Query().Get("order_no")
	if orderNo == "" {
		return pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeOrderNoRequired)
	}
	order, plan, err := s.paymentUc.OrderStatus(ctx, playerID, orderNo)
	if err != nil {
		return err
	}
	reply := &OrderStatusReply{
		OrderNo:      order.OrderNo,
		Status:       order.Status,
		PlanID:       order.PlanID,
		AmountCents:  order.AmountCents,
		Currency:     order.Currency,
		PaidAt:       order.PaidAt,
		ErrorMessage: order.ErrorMessage,
		CreatedAt:    order.CreatedAt,
	}
	if plan != nil {
		reply.PlanTitle = plan.Title
		reply.LivesGain = plan.LivesGain
	}
	if order.Status == constants.OrderStatusPaid {
		status, err := s.lifeUc.GetLives(ctx, playerID)
		if err != nil {
			return err
		}
		lifeReply := toLifeStatusReply(status)
		reply.LivesState = lifeReply
		reply.MembershipState = &MembershipStateReply{
			VipActive:      lifeReply.VipActive,
			VipType:        lifeReply.VipType,
			VipExpiresAt:   lifeReply.VipExpiresAt,
			UnlimitedLives: lifeReply.UnlimitedLives,
		}
	}
	return ctx.Result(200, reply)
}

// PaymentWebhook 接收支付服务商回调
// 签名要对原始报文计算，不能走 JSON 绑定
func (s *WordGameService) PaymentWebhook(ctx khttp.Context) error {
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeWebhookPayload)
	}
	sig := ctx.Header().Get(constants.SignatureHeader)

	res, err := s.paymentUc.HandleWebhook(ctx, payload, sig)
	if err != nil {
		return err
	}
	return ctx.Result(200, &WebhookReply{Received: true, Duplicate: res.Duplicate})
}

// Register 注册新玩家
func (s *WordGameService) Register(ctx khttp.Context) error {
	var req RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	player, err := s.playerUc.Register(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}
	return ctx.Result(201, &PlayerReply{PlayerID: player.PlayerID, Username: player.Username})
}

// Login 登录
func (s *WordGameService) Login(ctx khttp.Context) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	player, err := s.playerUc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}
	return ctx.Result(200, &PlayerReply{PlayerID: player.PlayerID, Username: player.Username})
}

// ListWords 随机取一批词条
// 查询参数: category 分类, limit 取词数量, exclude 逗号分隔的已见词条ID
func (s *WordGameService) ListWords(ctx khttp.Context) error {
	query := ctx.Request().URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	excludeIDs := parseIDList(query.Get("exclude"))

	words, err := s.wordUc.FetchWords(ctx, query.Get("category"), limit, excludeIDs)
	if err != nil {
		return err
	}
	reply := &ListWordsReply{Words: make([]*WordReply, 0, len(words))}
	for _, w := range words {
		reply.Words = append(reply.Words, &WordReply{WordID: w.ID, Word: w.Text, Category: w.Category})
	}
	return ctx.Result(200, reply)
}

// SubmitScore 上报单局成绩
func (s *WordGameService) SubmitScore(ctx khttp.Context) error {
	playerID, err := auth.RequirePlayerID(ctx)
	if err != nil {
		return err
	}
	var req SubmitScoreRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	rec, err := s.scoreUc.Submit(ctx, playerID, req.Score, req.WordCount)
	if err != nil {
		return err
	}
	return ctx.Result(200, toScoreReply(rec))
}

// ScoreHistory 查询最近的成绩记录
func (s *WordGameService) ScoreHistory(ctx khttp.Context) error {
	playerID, err := auth.RequirePlayerID(ctx)
	if err != nil {
		return err
	}
	scores, err := s.scoreUc.History(ctx, playerID)
	if err != nil {
		return err
	}
	reply := &ScoreHistoryReply{Scores: make([]*ScoreReply, 0, len(scores))}
	for _, rec := range scores {
		reply.Scores = append(reply.Scores, toScoreReply(rec))
	}
	return ctx.Result(200, reply)
}

func toLifeStatusReply(status *biz.LifeStatus) *LifeStatusReply {
	return &LifeStatusReply{
		Lives:                status.Lives,
		MaxLives:             status.MaxLives,
		RecoveryCapLives:     status.RecoveryCap,
		NextRecoverAt:        status.NextRecoverAt,
		NextRecoverInSeconds: status.NextRecoverInSeconds,
		VipActive:            status.Membership.Active,
		VipType:              status.Membership.Type,
		VipExpiresAt:         status.Membership.ExpiresAt,
		UnlimitedLives:       status.Membership.UnlimitedLives,
	}
}

func toScoreReply(rec *biz.Score) *ScoreReply {
	return &ScoreReply{
		ID:         rec.ID,
		PlayerName: rec.PlayerName,
		Score:      rec.Score,
		WordCount:  rec.WordCount,
		CreatedAt:  rec.CreatedAt,
	}
}

func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		if id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
