package carousel

import "github.com/utafrali/storefront/internal/domain"

// DefaultNews is the built-in "Latest News" feed.
func DefaultNews() []domain.NewsItem {
	return []domain.NewsItem{
		{
			Title:    "Nitro Deck Nintendo Switch Controllers",
			Source:   "GameSpot",
			Date:     "2024-07-11",
			ImageURL: "https://assets-prd.ignimgs.com/2023/09/18/img-1061-1695010900496.jpg",
			Link:     "https://www.gamespot.com/articles/nitro-deck-nintendo-switch-controllers-receive-big-price-cuts-before-prime-day-2024/1100-6519892/",
		},
		{
			Title:    "Every Major Video Game Release",
			Source:   "Gameranx",
			Date:     "2024-07-10",
			ImageURL: "https://static0.gamerantimages.com/wordpress/wp-content/uploads/2024/05/upcoming-xbox-games-assassin-s-creed-shadows-indiana-jones-stalker-2.jpg?q=49&fit=crop&w=1100&h=618&dpr=2",
			Link:     "https://gamerant.com/xbox-series-x-game-release-dates/",
		},
		{
			Title:    "Peanut Butter the Dog",
			Source:   "PC Gamer",
			Date:     "2024-07-07",
			ImageURL: "https://cdn.mos.cms.futurecdn.net/oeTGpZrqENGozYn6ZNHhZC-970-80.jpg.webp",
			Link:     "https://www.pcgamer.com/gaming-industry/events-conferences/peanut-butter-the-dog-finishes-ken-griffey-jr-speedrun-at-sgdq-with-a-walk-off-home-run-in-extra-innings/",
		},
		{
			Title:    "Rick and Morty: The Anime Trailer",
			Source:   "IGN",
			Date:     "2024-07-11",
			ImageURL: "https://assets-prd.ignimgs.com/2024/07/11/1-1720710683475.png?crop=16%3A9&width=888&dpr=2",
			Link:     "https://www.ign.com/articles/rick-and-morty-the-anime-trailer-multiversal-madness-august-debut",
		},
		{
			Title:    "Rockstar Considers Bully Super Popular",
			Source:   "The Gamer",
			Date:     "2024-07-11",
			ImageURL: "https://static1.thegamerimages.com/wordpress/wp-content/uploads/2024/07/bullyjimmyhopkins.jpg?q=70&fit=crop&w=1100&h=618&dpr=1",
			Link:     "https://www.thegamer.com/rockstar-games-thinks-bully-canis-canem-edit-is-one-of-its-most-popular-series-franchises-on-pc/",
		},
		{
			Title:    "Zelda: Echoes Of Wisdom Trailer",
			Source:   "Kotaku",
			Date:     "2024-06-20",
			ImageURL: "https://i.kinja-img.com/image/upload/c_fit,q_60,w_1315/08753c398a8ddcb227853d4019ce3f04.jpg",
			Link:     "https://kotaku.com/legend-of-zelda-echoes-of-wisdom-timeline-link-to-past-1851551343",
		},
		{
			Title:    "Elden Ring: Shadow of the Erdtree DLC Review",
			Source:   "N4G",
			Date:     "2024-07-06",
			ImageURL: "https://newsboilerstorage.blob.core.windows.net/news/2609467_0_lg.jpg",
			Link:     "https://n4g.com/news/2609467/elden-ring-shadow-of-the-erdtree-review-capsule-computers",
		},
	}
}
