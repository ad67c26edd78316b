package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// GameConfig 游戏全部可调参数
// DefaultGameConfig 给出的默认值还原了原版街机手感
type GameConfig struct {
	Simulation   SimulationConfig   `yaml:"simulation" toml:"simulation"`
	Player       PlayerConfig       `yaml:"player" toml:"player"`
	Alien        AlienConfig        `yaml:"alien" toml:"alien"`
	Mothership   MothershipConfig   `yaml:"mothership" toml:"mothership"`
	Wave         WaveConfig         `yaml:"wave" toml:"wave"`
	PlayerBullet PlayerBulletConfig `yaml:"playerBullet" toml:"playerBullet"`
	AlienBullet  AlienBulletConfig  `yaml:"alienBullet" toml:"alienBullet"`
	Collision    CollisionConfig    `yaml:"collision" toml:"collision"`
	Explosions   ExplosionsConfig   `yaml:"explosions" toml:"explosions"`
	Barriers     BarriersConfig     `yaml:"barriers" toml:"barriers"`
	Logging      LoggingConfig      `yaml:"logging" toml:"logging"`
}

// SimulationConfig 帧推进参数
type SimulationConfig struct {
	MaxDelta float64 `yaml:"maxDelta" toml:"maxDelta"` // 单帧模拟时间上限（秒）
	TickRate float64 `yaml:"tickRate" toml:"tickRate"` // 速度以"每 tick"表示时的换算帧率
	Seed     int64   `yaml:"seed" toml:"seed"`         // 随机种子，0 表示使用当前时间
}

// HitboxConfig 轴对齐碰撞盒的半尺寸
type HitboxConfig struct {
	HalfWidth  float64 `yaml:"halfWidth" toml:"halfWidth"`
	HalfHeight float64 `yaml:"halfHeight" toml:"halfHeight"`
	HalfDepth  float64 `yaml:"halfDepth" toml:"halfDepth"`
}

// PlayerConfig 玩家飞船参数
type PlayerConfig struct {
	Lives        int          `yaml:"lives" toml:"lives"`
	Speed        float64      `yaml:"speed" toml:"speed"` // 每 tick 水平移动距离
	LaneY        float64      `yaml:"laneY" toml:"laneY"`
	MinX         float64      `yaml:"minX" toml:"minX"`
	MaxX         float64      `yaml:"maxX" toml:"maxX"`
	FireInterval float64      `yaml:"fireInterval" toml:"fireInterval"` // 宿主侧开火限速（秒）
	HitJitter    float64      `yaml:"hitJitter" toml:"hitJitter"`       // 非致命命中时的旋转扰动幅度
	Hitbox       HitboxConfig `yaml:"hitbox" toml:"hitbox"`
}

// AlienConfig 普通外星人参数
type AlienConfig struct {
	Lives          int          `yaml:"lives" toml:"lives"`
	Speed          float64      `yaml:"speed" toml:"speed"`
	EdgeX          float64      `yaml:"edgeX" toml:"edgeX"`     // |x| 超过该值时掉头
	Descent        float64      `yaml:"descent" toml:"descent"` // 掉头时下降的距离
	FireChance     float64      `yaml:"fireChance" toml:"fireChance"`
	CooldownMin    float64      `yaml:"cooldownMin" toml:"cooldownMin"`
	CooldownJitter float64      `yaml:"cooldownJitter" toml:"cooldownJitter"`
	HitJitter      float64      `yaml:"hitJitter" toml:"hitJitter"`
	Points         int          `yaml:"points" toml:"points"`
	Types          []string     `yaml:"types" toml:"types"`
	Hitbox         HitboxConfig `yaml:"hitbox" toml:"hitbox"`
}

// MothershipConfig 母舰参数
type MothershipConfig struct {
	Lives         int          `yaml:"lives" toml:"lives"`
	Speed         float64      `yaml:"speed" toml:"speed"`
	SpawnX        float64      `yaml:"spawnX" toml:"spawnX"` // 出现位置 = (方向 * SpawnX, SpawnY, 0)
	SpawnY        float64      `yaml:"spawnY" toml:"spawnY"`
	EdgeX         float64      `yaml:"edgeX" toml:"edgeX"`
	Cooldown      float64      `yaml:"cooldown" toml:"cooldown"`
	SpreadOffsetX float64      `yaml:"spreadOffsetX" toml:"spreadOffsetX"`
	MuzzleOffsetY float64      `yaml:"muzzleOffsetY" toml:"muzzleOffsetY"`
	HitJitter     float64      `yaml:"hitJitter" toml:"hitJitter"`
	Points        int          `yaml:"points" toml:"points"`
	Hitbox        HitboxConfig `yaml:"hitbox" toml:"hitbox"`
}

// WaveConfig 外星人网格布局
type WaveConfig struct {
	Rows       int     `yaml:"rows" toml:"rows"`
	Columns    int     `yaml:"columns" toml:"columns"`
	ColSpacing float64 `yaml:"colSpacing" toml:"colSpacing"`
	RowSpacing float64 `yaml:"rowSpacing" toml:"rowSpacing"`
	BaseY      float64 `yaml:"baseY" toml:"baseY"`
}

// PlayerBulletConfig 玩家子弹参数
type PlayerBulletConfig struct {
	Offset float64 `yaml:"offset" toml:"offset"` // 相对发射点的竖直偏移
	Speed  float64 `yaml:"speed" toml:"speed"`   // 每 tick 上升距离
	MaxY   float64 `yaml:"maxY" toml:"maxY"`
}

// AlienBulletConfig 外星人子弹与拖尾参数
type AlienBulletConfig struct {
	Offset           float64 `yaml:"offset" toml:"offset"`
	Speed            float64 `yaml:"speed" toml:"speed"` // 每秒速度，负值向下
	Arc              float64 `yaml:"arc" toml:"arc"`     // 随机偏角范围（弧度），实际偏角在 ±Arc/2
	MinY             float64 `yaml:"minY" toml:"minY"`
	TailLifespan     float64 `yaml:"tailLifespan" toml:"tailLifespan"`
	TailSpawnRate    float64 `yaml:"tailSpawnRate" toml:"tailSpawnRate"` // 每秒粒子数
	TailFadeFraction float64 `yaml:"tailFadeFraction" toml:"tailFadeFraction"`
}

// CollisionConfig 射线检测参数
type CollisionConfig struct {
	RayLength   float64 `yaml:"rayLength" toml:"rayLength"`
	DedupRadius float64 `yaml:"dedupRadius" toml:"dedupRadius"` // 命中点附近已有爆炸时不再生成
}

// ExplosionPreset 一次爆炸的粒子数与尺寸
type ExplosionPreset struct {
	Particles int     `yaml:"particles" toml:"particles"`
	Size      float64 `yaml:"size" toml:"size"`
}

// ExplosionsConfig 各类爆炸预设与粒子参数
type ExplosionsConfig struct {
	PlayerBulletHit     ExplosionPreset `yaml:"playerBulletHit" toml:"playerBulletHit"`
	AlienBulletHit      ExplosionPreset `yaml:"alienBulletHit" toml:"alienBulletHit"`
	AlienDestroyed      ExplosionPreset `yaml:"alienDestroyed" toml:"alienDestroyed"`
	MothershipHit       ExplosionPreset `yaml:"mothershipHit" toml:"mothershipHit"`
	MothershipDestroyed ExplosionPreset `yaml:"mothershipDestroyed" toml:"mothershipDestroyed"`
	MothershipBonus     ExplosionPreset `yaml:"mothershipBonus" toml:"mothershipBonus"`
	PlayerDestroyed     ExplosionPreset `yaml:"playerDestroyed" toml:"playerDestroyed"`

	ParticleDuration    float64 `yaml:"particleDuration" toml:"particleDuration"` // 以 tick 计
	FadeTicks           float64 `yaml:"fadeTicks" toml:"fadeTicks"`
	EndScale            float64 `yaml:"endScale" toml:"endScale"`
	MaxVelocity         float64 `yaml:"maxVelocity" toml:"maxVelocity"`
	MaxRotationVelocity float64 `yaml:"maxRotationVelocity" toml:"maxRotationVelocity"`
	SizeDivisor         float64 `yaml:"sizeDivisor" toml:"sizeDivisor"`
	OffsetDivisor       float64 `yaml:"offsetDivisor" toml:"offsetDivisor"`
}

// BarrierPlacement 掩体位置
type BarrierPlacement struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// BarriersConfig 掩体配置，默认没有掩体
type BarriersConfig struct {
	Positions []BarrierPlacement `yaml:"positions" toml:"positions"`
	Hitbox    HitboxConfig       `yaml:"hitbox" toml:"hitbox"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "console" 或 "json"
}

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Simulation: SimulationConfig{
			MaxDelta: 0.033,
			TickRate: 60,
		},
		Player: PlayerConfig{
			Lives:        3,
			Speed:        0.3,
			LaneY:        -10,
			MinX:         -20,
			MaxX:         20,
			FireInterval: 0.35,
			HitJitter:    0.3,
			Hitbox:       HitboxConfig{HalfWidth: 1.5, HalfHeight: 1, HalfDepth: 1},
		},
		Alien: AlienConfig{
			Lives:          3,
			Speed:          0.01,
			EdgeX:          20,
			Descent:        2,
			FireChance:     0.002,
			CooldownMin:    2,
			CooldownJitter: 2,
			HitJitter:      0.3,
			Points:         30,
			Types:          []string{"Alien_1", "Alien_2", "Alien_3"},
			Hitbox:         HitboxConfig{HalfWidth: 1.5, HalfHeight: 1, HalfDepth: 1},
		},
		Mothership: MothershipConfig{
			Lives:         7,
			Speed:         0.1,
			SpawnX:        20,
			SpawnY:        8,
			EdgeX:         20,
			Cooldown:      1,
			SpreadOffsetX: 2.5,
			MuzzleOffsetY: -2,
			HitJitter:     0.25,
			Points:        50,
			Hitbox:        HitboxConfig{HalfWidth: 4, HalfHeight: 1.5, HalfDepth: 1.5},
		},
		Wave: WaveConfig{
			Rows:       3,
			Columns:    5,
			ColSpacing: 5,
			RowSpacing: 3,
			BaseY:      5,
		},
		PlayerBullet: PlayerBulletConfig{
			Offset: 2,
			Speed:  1.25,
			MaxY:   120,
		},
		AlienBullet: AlienBulletConfig{
			Offset:           -2,
			Speed:            -20,
			Arc:              math.Pi / 6,
			MinY:             -30,
			TailLifespan:     0.4,
			TailSpawnRate:    300,
			TailFadeFraction: 0.75,
		},
		Collision: CollisionConfig{
			RayLength:   2,
			DedupRadius: 1.0,
		},
		Explosions: ExplosionsConfig{
			PlayerBulletHit:     ExplosionPreset{Particles: 10, Size: 0.7},
			AlienBulletHit:      ExplosionPreset{Particles: 12, Size: 1.2},
			AlienDestroyed:      ExplosionPreset{Particles: 20, Size: 1},
			MothershipHit:       ExplosionPreset{Particles: 10, Size: 1},
			MothershipDestroyed: ExplosionPreset{Particles: 20, Size: 2},
			MothershipBonus:     ExplosionPreset{Particles: 30, Size: 2},
			PlayerDestroyed:     ExplosionPreset{Particles: 40, Size: 2.5},

			ParticleDuration:    90,
			FadeTicks:           40,
			EndScale:            0.3,
			MaxVelocity:         1.0 / 3,
			MaxRotationVelocity: 1.0 / 20,
			SizeDivisor:         1.5,
			OffsetDivisor:       1.5,
		},
		Barriers: BarriersConfig{
			Hitbox: HitboxConfig{HalfWidth: 2, HalfHeight: 1, HalfDepth: 1},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadGameConfig 从文件加载游戏配置
// 文件中未出现的字段保留默认值；格式由扩展名决定（.yaml/.yml 或 .toml）
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *GameConfig: 合并默认值并通过校验的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	cfg := DefaultGameConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse game config YAML from %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse game config TOML from %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported game config format %q (want .yaml, .yml or .toml)", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault 路径为空时返回默认配置，否则调用 LoadGameConfig
func LoadOrDefault(path string) (*GameConfig, error) {
	if path == "" {
		return DefaultGameConfig(), nil
	}
	return LoadGameConfig(path)
}

// Validate 校验配置的合法性
func (c *GameConfig) Validate() error {
	if c.Simulation.MaxDelta <= 0 {
		return fmt.Errorf("simulation.maxDelta must be positive, got %v", c.Simulation.MaxDelta)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tickRate must be positive, got %v", c.Simulation.TickRate)
	}

	if c.Player.Lives < 1 {
		return fmt.Errorf("player.lives must be at least 1, got %d", c.Player.Lives)
	}
	if c.Player.MinX >= c.Player.MaxX {
		return fmt.Errorf("player.minX (%v) must be less than player.maxX (%v)", c.Player.MinX, c.Player.MaxX)
	}
	if c.Alien.Lives < 1 {
		return fmt.Errorf("alien.lives must be at least 1, got %d", c.Alien.Lives)
	}
	if len(c.Alien.Types) == 0 {
		return fmt.Errorf("alien.types requires at least one alien type")
	}
	if c.Alien.FireChance < 0 || c.Alien.FireChance > 1 {
		return fmt.Errorf("alien.fireChance must be within [0, 1], got %v", c.Alien.FireChance)
	}
	if c.Mothership.Lives < 1 {
		return fmt.Errorf("mothership.lives must be at least 1, got %d", c.Mothership.Lives)
	}
	if c.Mothership.Cooldown <= 0 {
		return fmt.Errorf("mothership.cooldown must be positive, got %v", c.Mothership.Cooldown)
	}

	if c.Wave.Rows < 1 || c.Wave.Columns < 1 {
		return fmt.Errorf("wave grid must be at least 1x1, got %dx%d", c.Wave.Rows, c.Wave.Columns)
	}

	if c.PlayerBullet.Speed <= 0 {
		return fmt.Errorf("playerBullet.speed must be positive, got %v", c.PlayerBullet.Speed)
	}
	if c.AlienBullet.Speed >= 0 {
		return fmt.Errorf("alienBullet.speed must be negative (downwards), got %v", c.AlienBullet.Speed)
	}
	if c.AlienBullet.TailLifespan <= 0 || c.AlienBullet.TailSpawnRate <= 0 {
		return fmt.Errorf("alienBullet tail lifespan and spawn rate must be positive")
	}
	if c.AlienBullet.TailFadeFraction <= 0 || c.AlienBullet.TailFadeFraction > 1 {
		return fmt.Errorf("alienBullet.tailFadeFraction must be within (0, 1], got %v", c.AlienBullet.TailFadeFraction)
	}

	if c.Collision.RayLength <= 0 {
		return fmt.Errorf("collision.rayLength must be positive, got %v", c.Collision.RayLength)
	}
	if c.Collision.DedupRadius < 0 {
		return fmt.Errorf("collision.dedupRadius cannot be negative, got %v", c.Collision.DedupRadius)
	}

	presets := map[string]ExplosionPreset{
		"playerBulletHit":     c.Explosions.PlayerBulletHit,
		"alienBulletHit":      c.Explosions.AlienBulletHit,
		"alienDestroyed":      c.Explosions.AlienDestroyed,
		"mothershipHit":       c.Explosions.MothershipHit,
		"mothershipDestroyed": c.Explosions.MothershipDestroyed,
		"mothershipBonus":     c.Explosions.MothershipBonus,
		"playerDestroyed":     c.Explosions.PlayerDestroyed,
	}
	for name, p := range presets {
		if p.Particles < 0 {
			return fmt.Errorf("explosions.%s: particles cannot be negative, got %d", name, p.Particles)
		}
		if p.Size <= 0 {
			return fmt.Errorf("explosions.%s: size must be positive, got %v", name, p.Size)
		}
	}
	if c.Explosions.ParticleDuration <= 0 {
		return fmt.Errorf("explosions.particleDuration must be positive, got %v", c.Explosions.ParticleDuration)
	}
	if c.Explosions.FadeTicks <= 0 {
		return fmt.Errorf("explosions.fadeTicks must be positive, got %v", c.Explosions.FadeTicks)
	}
	if c.Explosions.SizeDivisor <= 0 || c.Explosions.OffsetDivisor <= 0 {
		return fmt.Errorf("explosions size and offset divisors must be positive")
	}

	return nil
}
