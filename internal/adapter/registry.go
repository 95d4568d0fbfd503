package adapter

import (
	"fmt"

	"EditorialSync/internal/config"
	"EditorialSync/internal/interfaces"
	"EditorialSync/internal/model"

	"github.com/sirupsen/logrus"
)

// ========== 全局工厂函数注册表（依赖interfaces包） ==========
var factoryRegistry = make(map[model.SportType]interfaces.Factory)

// Register 供适配器init函数调用，注册工厂函数
func Register(sport model.SportType, factory interfaces.Factory) {
	if factory == nil {
		panic(fmt.Sprintf("运动%s的工厂函数不能为nil", sport))
	}
	if _, exists := factoryRegistry[sport]; exists {
		logrus.Warnf("运动%s的适配器已注册，将覆盖原有实现", sport)
	}
	factoryRegistry[sport] = factory
}

// GetFactory 获取指定运动的工厂函数
func GetFactory(sport model.SportType) (interfaces.Factory, bool) {
	factory, ok := factoryRegistry[sport]
	return factory, ok
}

// ListFactories 列出所有已注册的工厂函数运动
func ListFactories() []model.SportType {
	var sports []model.SportType
	for s := range factoryRegistry {
		sports = append(sports, s)
	}
	return sports
}

// SportRegistry 运动类型→适配器实例的注册表
type SportRegistry struct {
	cfg      *config.Config
	logger   *logrus.Logger
	adapters map[model.SportType]interfaces.SportAdapter
}

// NewSportRegistry 根据配置中的数据源初始化各运动适配器实例
func NewSportRegistry(cfg *config.Config, logger *logrus.Logger) *SportRegistry {
	r := &SportRegistry{
		cfg:      cfg,
		logger:   logger,
		adapters: make(map[model.SportType]interfaces.SportAdapter),
	}
	r.initAdaptersFromFactories()
	return r
}

// initAdaptersFromFactories 从工厂函数注册表初始化适配器实例
func (r *SportRegistry) initAdaptersFromFactories() {
	for feedName, feedCfg := range r.cfg.Feeds {
		sport := model.SportType(feedName)
		if !model.ValidSport(sport) {
			r.logger.WithField("feed", feedName).Warn("配置了未支持的运动数据源，跳过")
			continue
		}

		factory, ok := GetFactory(sport)
		if !ok {
			r.logger.WithField("sport", sport).Error("未找到对应的工厂函数（init未注册？）")
			continue
		}

		cfgCopy := feedCfg
		adapterIns := factory(&cfgCopy, r.logger)
		if adapterIns == nil {
			r.logger.WithField("sport", sport).Error("工厂函数返回nil适配器实例")
			continue
		}
		if adapterIns.GetSport() != sport {
			r.logger.WithFields(logrus.Fields{
				"config_sport":  sport,
				"adapter_sport": adapterIns.GetSport(),
			}).Error("适配器运动类型与配置不匹配")
			continue
		}

		r.adapters[sport] = adapterIns
	}
	r.logger.WithField("sports", len(r.adapters)).Info("运动适配器初始化完成")
}

// GetAdapter 获取适配器实例
func (r *SportRegistry) GetAdapter(sport model.SportType) (interfaces.SportAdapter, error) {
	adapterIns, ok := r.adapters[sport]
	if !ok {
		var registered []string
		for s := range r.adapters {
			registered = append(registered, string(s))
		}
		return nil, fmt.Errorf("运动%s未初始化适配器实例（已初始化：%v）", sport, registered)
	}
	return adapterIns, nil
}

// ListRegisteredSports 获取所有已初始化实例的运动列表
func (r *SportRegistry) ListRegisteredSports() []model.SportType {
	var sports []model.SportType
	for s := range r.adapters {
		sports = append(sports, s)
	}
	return sports
}
