package service

import (
	"context"
	"time"

	"github.com/yeisme/cloudvault/pkg/configs"
	ctxPkg "github.com/yeisme/cloudvault/pkg/context"
	"github.com/yeisme/cloudvault/pkg/internal/model"
	"github.com/yeisme/cloudvault/pkg/internal/storage/db"
	"github.com/yeisme/cloudvault/pkg/internal/storage/mq"
	"github.com/yeisme/cloudvault/pkg/internal/types"
	nlog "github.com/yeisme/cloudvault/pkg/log"
	"github.com/yeisme/cloudvault/pkg/queue"
)

// DefaultRecentActivities 最近活动查询的默认条数.
const DefaultRecentActivities = 10

// recordTimeout 异步落库的独立超时，不跟随请求 context 取消.
const recordTimeout = 5 * time.Second

// ActivityService 审计日志：文件与文件夹目录在变更后写入操作流水.
// Record 为 fire-and-forget 下沉，绝不让审计失败影响主流程.
type ActivityService struct {
	dbClient *db.Client
	mqClient *mq.Client
}

// NewActivityService 从 context 获取依赖实例. MQ 可缺省（事件降级为仅落库）.
func NewActivityService(c context.Context) *ActivityService {
	dbc := ctxPkg.GetDBClient(c)

	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &ActivityService{
		dbClient: dbc,
		mqClient: ctxPkg.GetMQClient(c),
	}
}

// Record 异步记录一条审计流水. 使用独立的后台 context，
// 请求结束不会中断落库；任何失败只记日志.
func (s *ActivityService) Record(userID, action string, fileID, folderID *string) {
	activity := model.Activity{
		ID:       newID(),
		UserID:   userID,
		Action:   action,
		FileID:   fileID,
		FolderID: folderID,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := s.dbClient.GetDB().WithContext(ctx).Create(&activity).Error; err != nil {
			nlog.Logger().Error().Err(err).
				Str("user", userID).
				Str("action", action).
				Msg("record activity failed")

			return
		}

		s.publishRecorded(&activity)
	}()
}

// Log 显式记录审计日志（API 入口）. FileID 与 FolderID 必须且只能提供一个.
func (s *ActivityService) Log(ctx context.Context, userID string, req *types.LogActivityRequest) (*types.ActivityResponse, error) {
	if _, ok := model.AllowedActions[req.Action]; !ok {
		return nil, types.InvalidArgument("unknown action %q", req.Action)
	}

	hasFile := req.FileID != nil && *req.FileID != ""
	hasFolder := req.FolderID != nil && *req.FolderID != ""

	if hasFile == hasFolder {
		return nil, types.InvalidArgument("exactly one of file or folder must be provided")
	}

	activity := model.Activity{
		ID:       newID(),
		UserID:   userID,
		Action:   req.Action,
		FileID:   req.FileID,
		FolderID: req.FolderID,
	}

	if err := s.dbClient.GetDB().WithContext(ctx).Create(&activity).Error; err != nil {
		return nil, err
	}

	s.publishRecorded(&activity)

	return toActivityResponse(&activity), nil
}

// ListAll 列出全部审计日志，最新的在前. 空结果视为 NotFound.
func (s *ActivityService) ListAll(ctx context.Context) ([]types.ActivityResponse, error) {
	var activities []model.Activity

	err := s.dbClient.GetDB().WithContext(ctx).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	if len(activities) == 0 {
		return nil, types.NotFound("no activities found")
	}

	return toActivityResponses(activities), nil
}

// ListByUser 列出指定用户的审计日志，空结果为成功.
func (s *ActivityService) ListByUser(ctx context.Context, userID string) ([]types.ActivityResponse, error) {
	var activities []model.Activity

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	return toActivityResponses(activities), nil
}

// ListByFile 列出指定文件的审计日志.
func (s *ActivityService) ListByFile(ctx context.Context, fileID string) ([]types.ActivityResponse, error) {
	var activities []model.Activity

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	return toActivityResponses(activities), nil
}

// ListByFolder 列出指定文件夹的审计日志.
func (s *ActivityService) ListByFolder(ctx context.Context, folderID string) ([]types.ActivityResponse, error) {
	var activities []model.Activity

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	return toActivityResponses(activities), nil
}

// ListRecent 列出用户最近 limit 条审计日志，limit <= 0 时取默认值.
func (s *ActivityService) ListRecent(ctx context.Context, userID string, limit int) ([]types.ActivityResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentActivities
	}

	var activities []model.Activity

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	return toActivityResponses(activities), nil
}

// PruneBefore 删除某时间点之前的审计日志，返回删除条数. 供定时任务使用.
func (s *ActivityService) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.dbClient.GetDB().WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.Activity{})

	return res.RowsAffected, res.Error
}

// publishRecorded 发布 cv.activity.recorded 事件（尽力而为）.
func (s *ActivityService) publishRecorded(activity *model.Activity) {
	if s.mqClient == nil || !configs.GetConfig().Events.Enabled || !configs.GetConfig().Events.Activity.Recorded {
		return
	}

	payload := queue.ActivityRecordedPayload{
		ActivityID: activity.ID,
		UserID:     activity.UserID,
		Action:     activity.Action,
	}

	if activity.FileID != nil {
		payload.FileID = *activity.FileID
	}

	if activity.FolderID != nil {
		payload.FolderID = *activity.FolderID
	}

	msg, err := queue.NewWatermillMessage(queue.TopicActivityRecorded, payload, queue.WithProducer("cloudvault"))
	if err != nil {
		nlog.Logger().Error().Err(err).Msg("encode activity event failed")
		return
	}

	if err := s.mqClient.Publish(context.Background(), queue.TopicActivityRecorded, msg); err != nil {
		nlog.Logger().Warn().Err(err).Msg("publish activity event failed")
	}
}

func toActivityResponse(a *model.Activity) *types.ActivityResponse {
	return &types.ActivityResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Action:    a.Action,
		FileID:    a.FileID,
		FolderID:  a.FolderID,
		CreatedAt: a.CreatedAt,
	}
}

func toActivityResponses(activities []model.Activity) []types.ActivityResponse {
	out := make([]types.ActivityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, *toActivityResponse(&activities[i]))
	}

	return out
}
